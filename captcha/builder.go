package captcha

import (
	"time"

	apperrors "github.com/leeforge/rucaptcha/errors"
	"github.com/leeforge/rucaptcha/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultLength     = 4
	DefaultWidth      = 220
	DefaultHeight     = 70
	DefaultComplexity = 5

	MinComplexity = 1
	MaxComplexity = 10

	// 椭圆圆心落在 [0,w-25]x[0,h-15]，画布不能更小
	MinWidth  = 25
	MinHeight = 15
)

// Options 生效的构建参数
type Options struct {
	Length     int    `json:"length"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Complexity int    `json:"complexity"`
	Line       bool   `json:"line"`
	Noise      bool   `json:"noise"`
	Circle     bool   `json:"circle"`
	Format     Format `json:"format"`
}

// DefaultOptions 默认参数：4 字符、220x70、复杂度 5、有曲线、无噪点、有椭圆、PNG
func DefaultOptions() Options {
	return Options{
		Length:     DefaultLength,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Complexity: DefaultComplexity,
		Line:       true,
		Noise:      false,
		Circle:     true,
		Format:     FormatPNG,
	}
}

// Validate 检查会导致几何计算越界的参数
func (o Options) Validate() error {
	chain := apperrors.NewErrorChain()
	if o.Length < 0 {
		chain.Add(apperrors.NewInvalidConfiguration("length", o.Length, "must not be negative"))
	}
	if o.Width < MinWidth {
		chain.Add(apperrors.NewInvalidConfiguration("width", o.Width, "must be at least 25"))
	}
	if o.Height < MinHeight {
		chain.Add(apperrors.NewInvalidConfiguration("height", o.Height, "must be at least 15"))
	}
	return chain.Err()
}

func clampComplexity(c int) int {
	return min(max(c, MinComplexity), MaxComplexity)
}

// Captcha 生成结果：明文答案与编码后的图片
type Captcha struct {
	Text   string
	Image  []byte
	Format Format
}

// Builder 验证码构建器。每个设置方法返回新的 Builder，原值不变。
type Builder struct {
	opts   Options
	source Source
	fonts  FontSet
	logger logging.Logger
}

// NewBuilder 使用默认参数创建构建器
func NewBuilder() Builder {
	return Builder{opts: DefaultOptions()}
}

// NewBuilderFromOptions 从完整参数创建构建器，复杂度会被钳制
func NewBuilderFromOptions(opts Options) Builder {
	opts.Complexity = clampComplexity(opts.Complexity)
	return Builder{opts: opts}
}

func (b Builder) Length(length int) Builder {
	b.opts.Length = length
	return b
}

// Size 设置画布尺寸
func (b Builder) Size(width, height int) Builder {
	b.opts.Width = width
	b.opts.Height = height
	return b
}

// Complexity 设置噪点强度，钳制到 [1,10]
func (b Builder) Complexity(complexity int) Builder {
	b.opts.Complexity = clampComplexity(complexity)
	return b
}

func (b Builder) Line(line bool) Builder {
	b.opts.Line = line
	return b
}

func (b Builder) Noise(noise bool) Builder {
	b.opts.Noise = noise
	return b
}

// Circle 控制全部干扰图形；关闭时曲线也不绘制
func (b Builder) Circle(circle bool) Builder {
	b.opts.Circle = circle
	return b
}

// Format 按名称设置输出格式，未知名称回退到 PNG
func (b Builder) Format(format string) Builder {
	b.opts.Format = ParseFormat(format)
	return b
}

func (b Builder) OutputFormat(format Format) Builder {
	b.opts.Format = format
	return b
}

// Source 替换随机源，nil 表示进程随机源
func (b Builder) Source(src Source) Builder {
	b.source = src
	return b
}

// Fonts 替换字体集合，空集合表示内置字体
func (b Builder) Fonts(fonts FontSet) Builder {
	b.fonts = fonts
	return b
}

func (b Builder) Logger(logger logging.Logger) Builder {
	b.logger = logger
	return b
}

// Options 返回生效参数
func (b Builder) Options() Options {
	return b.opts
}

// Build 生成验证码：文本 → 白色画布 → 干扰图形 → 文字 → 噪点 → 编码
func (b Builder) Build() (*Captcha, error) {
	start := time.Now()
	opts := b.opts

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := b.source
	if src == nil {
		src = DefaultSource()
	}
	logger := b.logger
	if logger == nil {
		logger = logging.Nop()
	}

	fonts := b.fonts
	if len(fonts) == 0 {
		var err error
		if fonts, err = DefaultFonts(); err != nil {
			return nil, apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "load embedded fonts")
		}
	}

	text := RandomText(src, opts.Length)
	canvas := newCanvas(opts.Width, opts.Height)

	p := newGGPainter(canvas)
	err := render(p, src, []rune(text), fonts, opts)
	_ = p.Close()
	if err != nil {
		return nil, apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "render captcha")
	}

	if opts.Noise {
		applyNoise(canvas, src, opts.Complexity)
	}

	data, err := Encode(canvas, opts.Format)
	if err != nil {
		return nil, err
	}

	if logger.Enabled(zapcore.DebugLevel) {
		logger.Debug("captcha built",
			zap.Int("length", opts.Length),
			zap.Int("width", opts.Width),
			zap.Int("height", opts.Height),
			zap.Int("complexity", opts.Complexity),
			zap.Stringer("format", opts.Format),
			zap.Int("bytes", len(data)),
			zap.Duration("took", time.Since(start)),
		)
	}

	return &Captcha{Text: text, Image: data, Format: opts.Format}, nil
}

// render 绘制干扰图形与文字。空文本时画布保持空白。
func render(p painter, src Source, text []rune, fonts FontSet, opts Options) error {
	n := len(text)
	if n == 0 {
		return nil
	}

	colors := PickColors(src, n)
	interferenceColors := PickColors(src, n)
	layout := newGlyphLayout(src, opts.Width, opts.Height, n)

	if opts.Circle {
		drawInterference(p, src, opts.Width, opts.Height, interferenceColors, opts.Line)
	}

	f := fonts[src.Uniform(len(fonts)-1)]
	return drawText(p, src, text, f, colors, layout)
}
