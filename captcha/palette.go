package captcha

import "image/color"

// Palette 文字与干扰图形使用的固定调色板
var Palette = [...]color.RGBA{
	{197, 166, 3, 255},
	{187, 87, 5, 255},
	{176, 7, 7, 255},
	{186, 9, 56, 255},
	{204, 11, 143, 255},
	{124, 10, 190, 255},
	{87, 0, 200, 255},
	{61, 86, 168, 255},
	{63, 166, 126, 255},
	{69, 187, 48, 255},
	{105, 208, 3, 255},
	{160, 208, 3, 255},
	{216, 219, 2, 255},
	{50, 50, 50, 255},
}

// PickColors 从随机偏移开始循环取 count 个颜色
func PickColors(src Source, count int) []color.RGBA {
	if count <= 0 {
		return nil
	}

	offset := src.Uniform(len(Palette) - 1)
	out := make([]color.RGBA, count)
	for i := range out {
		out[i] = Palette[(offset+i)%len(Palette)]
	}
	return out
}
