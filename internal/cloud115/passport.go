package cloud115

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Credentials 115 账号凭证，密码只参与散列，从不明文发送
type Credentials struct {
	Username string
	Password string
}

// generateNonce 用当前时间生成一次性 nonce：秒和微秒分别转十六进制后拼接。
// 服务端要求恰好 13 位十六进制，微秒数过小时会不足 13 位，此时直接失败，
// 继续往下走只会生成一个服务端无法校验的密码散列。
func generateNonce(now time.Time) (string, error) {
	whole := now.Unix()
	frac := int64(now.Nanosecond() / 1000)
	nonce := fmt.Sprintf("%x%x", whole, frac)
	if len(nonce) != 13 {
		return "", &SignatureError{Nonce: nonce}
	}
	return nonce, nil
}

// ssopw 链式散列签名：sha1(sha1(sha1(pw)+sha1(user)) + upper(nonce))。
// nonce 充当每次尝试的盐，防止登录表单被重放。
func ssopw(creds Credentials, nonce string) string {
	p := sha1Hex(creds.Password)
	u := sha1Hex(creds.Username)
	return sha1Hex(sha1Hex(p+u) + strings.ToUpper(nonce))
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// loginForm 从凭证和 nonce 派生一次性的 SSO 登录表单。
// 每次登录必须重新生成 nonce，因此整个表单都是单次有效的。
func loginForm(creds Credentials, nonce string) map[string]string {
	return map[string]string{
		"login[ssoent]":     "A1",
		"login[version]":    "2.0",
		"login[ssoext]":     nonce,
		"login[ssoln]":      creds.Username,
		"login[ssopw]":      ssopw(creds, nonce),
		"login[ssovcode]":   nonce,
		"login[safe]":       "1",
		"login[time]":       "0",
		"login[safe_login]": "0",
		"goto":              "http://115.com/",
	}
}
