package captcha

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"png":  FormatPNG,
		"jpg":  FormatJPEG,
		"jpeg": FormatJPEG,
		"webp": FormatWebP,
		"gif":  FormatPNG,
		"":     FormatPNG,
		"PNG":  FormatPNG,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseFormat(in), in)
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "image/jpeg", FormatJPEG.ContentType())
	assert.Equal(t, "image/webp", FormatWebP.ContentType())

	assert.Equal(t, ".png", FormatPNG.Extension())
	assert.Equal(t, ".jpg", FormatJPEG.Extension())
	assert.Equal(t, ".webp", FormatWebP.Extension())

	var f Format
	require.NoError(t, f.UnmarshalText([]byte("webp")))
	assert.Equal(t, FormatWebP, f)
	text, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "webp", string(text))
}

func TestEncodeSignatures(t *testing.T) {
	canvas := newCanvas(40, 20)

	data, err := Encode(canvas, FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))

	data, err = Encode(canvas, FormatJPEG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}))

	data, err = Encode(canvas, FormatWebP)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	// 未知格式已在解析阶段回退为 PNG
	data, err = Encode(canvas, ParseFormat("gif"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

func TestEncodeRoundTripDimensions(t *testing.T) {
	canvas := newCanvas(33, 17)

	decoders := map[Format]func([]byte) (image.Image, error){
		FormatPNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		FormatJPEG: func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
		FormatWebP: func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) },
	}

	for format, decode := range decoders {
		data, err := Encode(canvas, format)
		require.NoError(t, err, format.String())

		img, err := decode(data)
		require.NoError(t, err, format.String())
		assert.Equal(t, 33, img.Bounds().Dx(), format.String())
		assert.Equal(t, 17, img.Bounds().Dy(), format.String())
	}
}
