package captcha

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/leeforge/rucaptcha/errors"
	"github.com/leeforge/rucaptcha/logging"
	"github.com/leeforge/rucaptcha/metrics"
	"go.uber.org/zap"
)

// Generator 创建验证码挑战
type Generator interface {
	// Generate 生成验证码
	// 返回: CaptchaData (返回给客户端), answer (由调用方自行保存), error
	Generate(ctx context.Context, captchaType CaptchaType) (*CaptchaData, string, error)
}

// ImageGenerator 图片验证码生成器
type ImageGenerator struct {
	config  Config
	builder Builder
	logger  logging.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

// GeneratorOption 生成器选项
type GeneratorOption func(*ImageGenerator)

// WithLogger 设置日志
func WithLogger(logger logging.Logger) GeneratorOption {
	return func(g *ImageGenerator) {
		g.logger = logger
	}
}

// WithMetrics 设置指标收集器
func WithMetrics(collector *metrics.Collector) GeneratorOption {
	return func(g *ImageGenerator) {
		g.metrics = collector
	}
}

// WithClock 设置时钟，用于计算过期时间
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *ImageGenerator) {
		g.now = now
	}
}

// WithSource 设置随机源
func WithSource(src Source) GeneratorOption {
	return func(g *ImageGenerator) {
		g.builder = g.builder.Source(src)
	}
}

// WithFonts 设置字体集合
func WithFonts(fonts FontSet) GeneratorOption {
	return func(g *ImageGenerator) {
		g.builder = g.builder.Fonts(fonts)
	}
}

// NewImageGenerator 创建图片验证码生成器
func NewImageGenerator(cfg Config, opts ...GeneratorOption) *ImageGenerator {
	g := &ImageGenerator{
		config:  cfg,
		builder: cfg.Builder(),
		logger:  logging.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Nop()
	}
	if g.metrics == nil {
		g.metrics = metrics.NewCollector()
	}
	g.builder = g.builder.Logger(g.logger)
	return g
}

// Metrics 返回指标收集器
func (g *ImageGenerator) Metrics() *metrics.Collector {
	return g.metrics
}

// Builder 返回生成器使用的构建器
func (g *ImageGenerator) Builder() Builder {
	return g.builder
}

// Generate 实现 Generator 接口
func (g *ImageGenerator) Generate(ctx context.Context, captchaType CaptchaType) (*CaptchaData, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", apperrors.NewCanceled(err)
	}
	if captchaType != TypeImage {
		return nil, "", ErrUnsupportedType
	}

	opts := g.builder.Options()
	start := time.Now()
	c, err := g.builder.Build()
	g.metrics.RecordGeneration(opts.Format.String(), time.Since(start).Seconds(), err)
	if err != nil {
		g.logger.Error("captcha generation failed", zap.Error(err))
		return nil, "", err
	}

	data := &CaptchaData{
		ID:        uuid.NewString(),
		Type:      TypeImage,
		Format:    c.Format,
		Width:     opts.Width,
		Height:    opts.Height,
		Content:   DataURI(c),
	}
	if g.config.TTL > 0 {
		data.ExpiresAt = g.now().Add(g.config.TTL)
	}

	g.logger.Debug("captcha generated",
		zap.String("id", data.ID),
		zap.Stringer("format", c.Format),
		zap.Time("expires_at", data.ExpiresAt),
	)
	return data, c.Text, nil
}

// DataURI 将图片编码为 data URI
func DataURI(c *Captcha) string {
	return "data:" + c.Format.ContentType() + ";base64," + base64.StdEncoding.EncodeToString(c.Image)
}

var _ Generator = (*ImageGenerator)(nil)
