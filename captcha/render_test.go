package captcha

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type curveCall struct {
	start, end, ctrl1, ctrl2 point
	color                    color.RGBA
}

type ellipseCall struct {
	center point
	rx, ry float64
	color  color.RGBA
}

type glyphCall struct {
	ch             rune
	left, top      float64
	xscale, yscale float64
	color          color.RGBA
}

// recordingPainter 记录绘制调用，不做实际绘制
type recordingPainter struct {
	curves   []curveCall
	ellipses []ellipseCall
	glyphs   []glyphCall
}

func (r *recordingPainter) CubicBezier(start, end, ctrl1, ctrl2 point, c color.RGBA) {
	r.curves = append(r.curves, curveCall{start, end, ctrl1, ctrl2, c})
}

func (r *recordingPainter) FilledEllipse(center point, rx, ry float64, c color.RGBA) {
	r.ellipses = append(r.ellipses, ellipseCall{center, rx, ry, c})
}

func (r *recordingPainter) Glyph(ch rune, _ *Font, left, top, xscale, yscale float64, c color.RGBA) error {
	r.glyphs = append(r.glyphs, glyphCall{ch, left, top, xscale, yscale, c})
	return nil
}

func testFonts(t *testing.T) FontSet {
	t.Helper()
	fonts, err := DefaultFonts()
	require.NoError(t, err)
	return fonts
}

func TestInterferenceEllipseCountIgnoresLineFlag(t *testing.T) {
	colors := PickColors(NewSeededSource(1), 4)

	withLine := &recordingPainter{}
	drawInterference(withLine, NewSeededSource(1), 220, 70, colors, true)
	assert.Len(t, withLine.ellipses, 4)
	assert.Len(t, withLine.curves, 4)

	withoutLine := &recordingPainter{}
	drawInterference(withoutLine, NewSeededSource(1), 220, 70, colors, false)
	assert.Len(t, withoutLine.ellipses, 4)
	assert.Empty(t, withoutLine.curves)
}

func TestInterferenceGeometryBounds(t *testing.T) {
	const w, h = 220, 70
	src := NewSeededSource(11)
	rec := &recordingPainter{}

	for i := 0; i < 200; i++ {
		drawInterference(rec, src, w, h, []color.RGBA{Palette[0]}, true)
	}

	for _, e := range rec.ellipses {
		assert.GreaterOrEqual(t, e.rx, 10.0)
		assert.LessOrEqual(t, e.rx, 19.0)
		assert.Equal(t, e.rx, e.ry)
		assert.GreaterOrEqual(t, e.center.X, 0.0)
		assert.LessOrEqual(t, e.center.X, float64(w-25))
		assert.GreaterOrEqual(t, e.center.Y, 0.0)
		assert.LessOrEqual(t, e.center.Y, float64(h-15))
	}

	for _, c := range rec.curves {
		assert.Equal(t, 5.0, c.start.X)
		assert.Equal(t, float64(w-5), c.end.X)
		assert.GreaterOrEqual(t, c.start.Y, 5.0)
		assert.LessOrEqual(t, c.start.Y, float64(h/2))
		assert.GreaterOrEqual(t, c.ctrl1.X, float64(w/6))
		assert.LessOrEqual(t, c.ctrl1.X, float64(w/4*3))
		assert.GreaterOrEqual(t, c.ctrl2.X, float64(w/12))
		assert.LessOrEqual(t, c.ctrl2.X, float64(w/12*3))
	}
}

func TestBaseScale(t *testing.T) {
	assert.Equal(t, 55.0, baseScale(1))
	assert.Equal(t, 55.0, baseScale(3))
	assert.Equal(t, 45.0, baseScale(4))
	assert.Equal(t, 45.0, baseScale(5))
	assert.Equal(t, 32.0, baseScale(6))
	assert.Equal(t, 32.0, baseScale(12))
}

func TestGlyphLayout(t *testing.T) {
	layout := newGlyphLayout(NewSequenceSource(0), 220, 70, 4)
	assert.Equal(t, 50.0, layout.column)
	assert.Equal(t, 8.0, layout.top)
	assert.Equal(t, 45.0, layout.xscale)
	assert.Equal(t, 70.0, layout.yscale)

	src := NewSeededSource(5)
	for i := 0; i < 200; i++ {
		l := newGlyphLayout(src, 220, 70, 4)
		assert.GreaterOrEqual(t, l.xscale, 36.0)
		assert.LessOrEqual(t, l.xscale, 45.0)
		assert.GreaterOrEqual(t, l.yscale, 56.0)
		assert.LessOrEqual(t, l.yscale, 70.0)
	}
}

func TestDrawTextRepetitions(t *testing.T) {
	text := []rune("ABCD")
	colors := PickColors(NewSequenceSource(0), len(text))
	layout := newGlyphLayout(NewSequenceSource(0), 220, 70, len(text))
	src := NewSeededSource(21)

	for round := 0; round < 50; round++ {
		rec := &recordingPainter{}
		require.NoError(t, drawText(rec, src, text, nil, colors, layout))

		perChar := make(map[rune]int)
		for _, g := range rec.glyphs {
			perChar[g.ch]++
		}
		for i, ch := range text {
			assert.GreaterOrEqual(t, perChar[ch], 1)
			assert.LessOrEqual(t, perChar[ch], 3)

			for _, g := range rec.glyphs {
				if g.ch != ch {
					continue
				}
				offset := g.left - 10 - float64(i)*layout.column
				assert.GreaterOrEqual(t, offset, 0.0)
				assert.LessOrEqual(t, offset, 2.0)
				assert.Equal(t, layout.xscale+offset, g.xscale)
				assert.Equal(t, layout.yscale, g.yscale)
				assert.Equal(t, layout.top, g.top)
				assert.Equal(t, colors[i], g.color)
			}
		}
	}
}

func TestRenderWithoutCircleDrawsNoShapes(t *testing.T) {
	opts := DefaultOptions()
	opts.Circle = false
	opts.Line = true

	rec := &recordingPainter{}
	require.NoError(t, render(rec, NewSeededSource(2), []rune("abcd"), testFonts(t), opts))
	assert.Empty(t, rec.curves)
	assert.Empty(t, rec.ellipses)
	assert.NotEmpty(t, rec.glyphs)
}

func TestRenderEmptyText(t *testing.T) {
	rec := &recordingPainter{}
	require.NoError(t, render(rec, NewSeededSource(2), nil, testFonts(t), DefaultOptions()))
	assert.Empty(t, rec.curves)
	assert.Empty(t, rec.ellipses)
	assert.Empty(t, rec.glyphs)
}

func TestRenderIsDeterministicForSameSource(t *testing.T) {
	fonts := testFonts(t)
	a, b := &recordingPainter{}, &recordingPainter{}

	require.NoError(t, render(a, NewSeededSource(99), []rune("xyz"), fonts, DefaultOptions()))
	require.NoError(t, render(b, NewSeededSource(99), []rune("xyz"), fonts, DefaultOptions()))
	assert.Equal(t, a, b)
	assert.Len(t, a.ellipses, 3)
}
