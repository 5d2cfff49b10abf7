package captcha

import (
	"image"
	"math"
)

// applyNoise 对每个像素的 RGB 通道叠加高斯噪声，均值 complexity-1，
// 标准差 10*complexity-10，alpha 保持不变。
func applyNoise(img *image.RGBA, src Source, complexity int) {
	mean, stddev := noiseParams(complexity)
	if mean == 0 && stddev == 0 {
		return
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			for c := 0; c < 3; c++ {
				row[i+c] = clampChannel(float64(row[i+c]) + mean + stddev*src.Normal())
			}
		}
	}
}

func noiseParams(complexity int) (mean, stddev float64) {
	complexity = clampComplexity(complexity)
	return float64(complexity - 1), float64(10*complexity - 10)
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}
