package captcha

import "github.com/leeforge/rucaptcha/utils"

// Generate 一次性生成验证码，返回答案与图片字节。
// 参数异常时 panic，需要错误返回请使用 Builder.Build。
func Generate(length, complexity int, line, noise, circle bool, format string) (string, []byte) {
	c := utils.Panic(NewBuilder().
		Length(length).
		Complexity(complexity).
		Line(line).
		Noise(noise).
		Circle(circle).
		Format(format).
		Build())
	return c.Text, c.Image
}
