package captcha

import "image/color"

// drawInterference 为每个字符位置画一个实心椭圆，line 为真时先画一条贝塞尔曲线。
// 调用方只在 circle 开启时调用，line 开关嵌套在其中。
func drawInterference(p painter, src Source, width, height int, colors []color.RGBA, line bool) {
	for _, c := range colors {
		if line {
			drawInterferenceLine(p, src, width, height, c)
		}
		drawInterferenceEllipse(p, src, width, height, c)
	}
}

// drawInterferenceLine 从左边缘附近扫到右边缘附近的三次贝塞尔曲线
func drawInterferenceLine(p painter, src Source, width, height int, c color.RGBA) {
	start := point{X: 5, Y: Between(src, 5, height/2)}
	end := point{X: float64(width - 5), Y: Between(src, 5, height-5)}
	ctrl1 := point{
		X: Between(src, width/6, width/4*3),
		Y: Between(src, 5, height-5),
	}
	ctrl2 := point{
		X: Between(src, width/12, width/12*3),
		Y: Between(src, 5, height-5),
	}

	p.CubicBezier(start, end, ctrl1, ctrl2, c)
}

// drawInterferenceEllipse 半径 [10,19]，圆心落在 [0,w-25]x[0,h-15] 内
func drawInterferenceEllipse(p painter, src Source, width, height int, c color.RGBA) {
	r := float64(10 + src.Uniform(9))
	center := point{
		X: float64(src.Uniform(width - 25)),
		Y: float64(src.Uniform(height - 15)),
	}

	p.FilledEllipse(center, r, r, c)
}
