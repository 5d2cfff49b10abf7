package captcha

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/leeforge/rucaptcha/logging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font 解析后的字体，解析完成后只读，可被多个构建并发使用。
type Font struct {
	name string
	otf  *opentype.Font

	// sizePerPixel 把字形像素高度（ascent+descent）换算为字号
	sizePerPixel float64
	// ascentRatio 基线以上高度占字形像素高度的比例
	ascentRatio float64
}

// FontSet 每张验证码从中随机选择一个字体
type FontSet []*Font

// ParseFont 解析 TTF/OTF 数据
func ParseFont(name string, data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}

	upem := int(otf.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("parse font %s: invalid units per em %d", name, upem)
	}

	var buf sfnt.Buffer
	m, err := otf.Metrics(&buf, fixed.I(upem), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("read metrics of font %s: %w", name, err)
	}

	ascent := math.Abs(float64(m.Ascent) / 64)
	descent := math.Abs(float64(m.Descent) / 64)
	height := ascent + descent
	if height <= 0 {
		return nil, fmt.Errorf("read metrics of font %s: zero line height", name)
	}

	return &Font{
		name:         name,
		otf:          otf,
		sizePerPixel: float64(upem) / height,
		ascentRatio:  ascent / height,
	}, nil
}

// Name 字体名称
func (f *Font) Name() string {
	return f.name
}

// Ascent 返回指定字形像素高度下基线到顶部的距离
func (f *Font) Ascent(pixelHeight float64) float64 {
	return f.ascentRatio * pixelHeight
}

// NewFace 创建字形像素高度为 pixelHeight 的字体外观，调用方负责 Close。
func (f *Font) NewFace(pixelHeight float64) (font.Face, error) {
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    pixelHeight * f.sizePerPixel,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face for font %s: %w", f.name, err)
	}
	return face, nil
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     FontSet
	defaultFontsErr  error
)

// DefaultFonts 返回内置的两个字体，首次调用时解析，之后只读共享。
func DefaultFonts() (FontSet, error) {
	defaultFontsOnce.Do(func() {
		italic, err := ParseFont("goitalic", goitalic.TTF)
		if err != nil {
			defaultFontsErr = err
			return
		}
		medium, err := ParseFont("gomediumitalic", gomediumitalic.TTF)
		if err != nil {
			defaultFontsErr = err
			return
		}
		defaultFonts = FontSet{italic, medium}
	})
	return defaultFonts, defaultFontsErr
}

// LoadFonts 从文件加载自定义字体，无法读取或解析的文件记录警告后跳过；
// 一个都没有加载成功时回退到内置字体。
func LoadFonts(logger logging.Logger, paths ...string) (FontSet, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	set := make(FontSet, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("could not read custom font, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		f, err := ParseFont(path, data)
		if err != nil {
			logger.Warn("could not parse custom font, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		set = append(set, f)
	}

	if len(set) == 0 {
		return DefaultFonts()
	}
	return set, nil
}
