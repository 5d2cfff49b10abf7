package captcha

import (
	"time"

	"github.com/creasty/defaults"
)

// Config 验证码配置
type Config struct {
	TTL time.Duration `mapstructure:"ttl" json:"ttl" yaml:"ttl" default:"5m" validate:"gte=0"` // 过期时间

	// 批量生成的并发数
	Parallel int `mapstructure:"parallel" json:"parallel" yaml:"parallel" default:"4" validate:"gte=1"`

	// 自定义字体文件，为空时使用内置字体
	Fonts []string `mapstructure:"fonts" json:"fonts" yaml:"fonts"`

	Image ImageConfig `mapstructure:"image" json:"image" yaml:"image"`
}

// ImageConfig 图片验证码配置
type ImageConfig struct {
	Width      int    `mapstructure:"width" json:"width" yaml:"width" default:"220" validate:"gte=25"`   // 宽度
	Height     int    `mapstructure:"height" json:"height" yaml:"height" default:"70" validate:"gte=15"` // 高度
	Length     int    `mapstructure:"length" json:"length" yaml:"length" default:"4" validate:"gte=0"`   // 字符长度
	Complexity int    `mapstructure:"complexity" json:"complexity" yaml:"complexity" default:"5"`        // 噪点强度，钳制到 [1,10]
	Line       bool   `mapstructure:"line" json:"line" yaml:"line" default:"true"`                       // 干扰曲线
	Noise      bool   `mapstructure:"noise" json:"noise" yaml:"noise"`                                   // 高斯噪点
	Circle     bool   `mapstructure:"circle" json:"circle" yaml:"circle" default:"true"`                 // 干扰椭圆，关闭时曲线也不绘制
	Format     string `mapstructure:"format" json:"format" yaml:"format" default:"png"`                  // png / jpg / jpeg / webp
}

// DefaultConfig 返回填充了默认值的配置
func DefaultConfig() Config {
	var cfg Config
	defaults.MustSet(&cfg)
	return cfg
}

// Options 转换为构建参数
func (c ImageConfig) Options() Options {
	return Options{
		Length:     c.Length,
		Width:      c.Width,
		Height:     c.Height,
		Complexity: clampComplexity(c.Complexity),
		Line:       c.Line,
		Noise:      c.Noise,
		Circle:     c.Circle,
		Format:     ParseFormat(c.Format),
	}
}

// Builder 根据配置创建构建器
func (c Config) Builder() Builder {
	return NewBuilderFromOptions(c.Image.Options())
}
