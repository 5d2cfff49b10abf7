package captcha

import "image/color"

const (
	scaleSmall  = 32
	scaleMedium = 45
	scaleLarge  = 55
)

// baseScale 按字符数选择基础字号
func baseScale(n int) float64 {
	switch {
	case n <= 3:
		return scaleLarge
	case n <= 5:
		return scaleMedium
	default:
		return scaleSmall
	}
}

// glyphLayout 一次构建内所有字符共享的排版参数
type glyphLayout struct {
	column float64
	top    float64
	xscale float64
	yscale float64
}

// newGlyphLayout 计算列宽与顶部位置，并对横纵缩放做随机缩减（最多 20%）
func newGlyphLayout(src Source, width, height, n int) glyphLayout {
	scale := baseScale(n)
	h := float64(height)

	return glyphLayout{
		column: float64((width - 20) / n),
		top:    float64(height/3 - 15),
		xscale: scale - float64(src.Uniform(int(scale*0.2))),
		yscale: h - float64(src.Uniform(int(h*0.2))),
	}
}

// drawText 逐字符绘制，每个字符重复 1~3 次，后续重复可能右移 1px 并加宽，
// 模拟加粗与模糊。
func drawText(p painter, src Source, text []rune, f *Font, colors []color.RGBA, layout glyphLayout) error {
	for i, ch := range text {
		repeats := src.Uniform(2) + 1
		for j := 0; j < repeats; j++ {
			offset := float64(j * src.Uniform(1))
			left := 10 + offset + float64(i)*layout.column

			if err := p.Glyph(ch, f, left, layout.top, layout.xscale+offset, layout.yscale, colors[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
