package captcha

// Alphabet 验证码字符集，去除了易混淆的 0 1 I L O i l o。
const Alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"

var alphabetRunes = []rune(Alphabet)

// RandomText 生成指定长度的随机验证码文本，允许字符重复。
func RandomText(src Source, length int) string {
	if length <= 0 {
		return ""
	}

	out := make([]rune, length)
	last := len(alphabetRunes) - 1
	for i := range out {
		out[i] = alphabetRunes[src.Uniform(last)]
	}
	return string(out)
}

// InAlphabet 判断文本是否只包含字符集内的字符
func InAlphabet(text string) bool {
	for _, r := range text {
		found := false
		for _, a := range alphabetRunes {
			if r == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
