package captcha

import (
	"time"

	apperrors "github.com/leeforge/rucaptcha/errors"
)

// CaptchaType 定义验证码类型
type CaptchaType string

const (
	TypeImage CaptchaType = "image" // 图片验证码
)

// CaptchaData 返回给客户端的验证码数据，不包含答案
type CaptchaData struct {
	ID        string      `json:"id"`
	Type      CaptchaType `json:"type"`
	Format    Format      `json:"format"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Content   string      `json:"content"`   // data URI
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Expired 判断在 now 时刻是否已过期；ExpiresAt 为零值表示永不过期
func (d *CaptchaData) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}

// ErrUnsupportedType 不支持的验证码类型
var ErrUnsupportedType = apperrors.New(apperrors.ErrorTypeUnsupported, "unsupported captcha type")
