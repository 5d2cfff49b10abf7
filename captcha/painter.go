package captcha

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

type point struct {
	X, Y float64
}

// painter 画布绘制操作。生产实现基于 gg，测试用记录实现统计图形数量。
type painter interface {
	CubicBezier(start, end, ctrl1, ctrl2 point, c color.RGBA)
	FilledEllipse(center point, rx, ry float64, c color.RGBA)
	// Glyph 以 (left, top) 为左上角绘制字符；yscale 为字形像素高度，
	// xscale 为水平方向的等效像素高度。
	Glyph(ch rune, f *Font, left, top, xscale, yscale float64, c color.RGBA) error
}

// newCanvas 创建纯白不透明画布
func newCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

type faceKey struct {
	font   *Font
	height float64
}

// ggPainter 直接绘制到构建独占的画布上
type ggPainter struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func newGGPainter(canvas *image.RGBA) *ggPainter {
	return &ggPainter{
		dc:    gg.NewContextForRGBA(canvas),
		faces: make(map[faceKey]font.Face),
	}
}

func (p *ggPainter) CubicBezier(start, end, ctrl1, ctrl2 point, c color.RGBA) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(1)
	p.dc.MoveTo(start.X, start.Y)
	p.dc.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, end.X, end.Y)
	p.dc.Stroke()
}

func (p *ggPainter) FilledEllipse(center point, rx, ry float64, c color.RGBA) {
	p.dc.SetColor(c)
	p.dc.DrawEllipse(center.X, center.Y, rx, ry)
	p.dc.Fill()
}

func (p *ggPainter) Glyph(ch rune, f *Font, left, top, xscale, yscale float64, c color.RGBA) error {
	if yscale <= 0 || xscale <= 0 {
		return nil
	}

	face, err := p.face(f, yscale)
	if err != nil {
		return err
	}

	baseline := top + f.Ascent(yscale)

	p.dc.Push()
	defer p.dc.Pop()

	p.dc.SetFontFace(face)
	p.dc.SetColor(c)
	p.dc.ScaleAbout(xscale/yscale, 1, left, baseline)
	p.dc.DrawString(string(ch), left, baseline)
	return nil
}

func (p *ggPainter) face(f *Font, height float64) (font.Face, error) {
	key := faceKey{font: f, height: height}
	if face, ok := p.faces[key]; ok {
		return face, nil
	}

	face, err := f.NewFace(height)
	if err != nil {
		return nil, err
	}
	p.faces[key] = face
	return face, nil
}

// Close 释放本次构建创建的字体外观
func (p *ggPainter) Close() error {
	var lastErr error
	for key, face := range p.faces {
		if err := face.Close(); err != nil {
			lastErr = err
		}
		delete(p.faces, key)
	}
	return lastErr
}
