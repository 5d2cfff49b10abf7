package captcha

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	apperrors "github.com/leeforge/rucaptcha/errors"
)

// Format 图片输出格式
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatWebP
)

// jpegQuality 与媒体处理管道的格式转换质量一致
const jpegQuality = 90

// ParseFormat 解析格式名称，无法识别时回退到 PNG（不报错）
func ParseFormat(s string) Format {
	switch s {
	case "png":
		return FormatPNG
	case "jpg", "jpeg":
		return FormatJPEG
	case "webp":
		return FormatWebP
	default:
		return FormatPNG
	}
}

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "png"
	}
}

// ContentType MIME 类型
func (f Format) ContentType() string {
	return "image/" + f.String()
}

// Extension 文件扩展名（含点）
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + f.String()
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText 与 ParseFormat 一致，未知值回退到 PNG
func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))
	return nil
}

// Encode 将画布编码为完整的图片文件字节
func Encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer

	var err error
	switch f {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case FormatWebP:
		err = nativewebp.Encode(&buf, img, nil)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, apperrors.NewEncodeFailed(f.String(), err)
	}

	return buf.Bytes(), nil
}
