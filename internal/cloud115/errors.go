package cloud115

import (
	"errors"
	"fmt"
)

// ErrNotImplemented 尚未实现的接口 (add_task_bt / add_task_url / delete_task)
var ErrNotImplemented = errors.New("cloud115: api not implemented")

// TransportError 网络层或 HTTP 状态码失败
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cloud115: request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("cloud115: request %s failed with status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError 服务端返回的结构不符合预期，通常意味着 115 改了接口
type ProtocolError struct {
	Endpoint string
	Field    string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cloud115: %s response missing %q", e.Endpoint, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("cloud115: %s returned invalid data: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("cloud115: %s returned invalid data", e.Endpoint)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AuthReason 登录被拒绝的具体原因，调用方据此区分提示
type AuthReason int

const (
	AuthUnknown AuthReason = iota
	AuthAccountNotFound
	AuthWrongPassword
)

func (r AuthReason) String() string {
	switch r {
	case AuthAccountNotFound:
		return "account does not exist"
	case AuthWrongPassword:
		return "password is incorrect"
	default:
		return "login rejected"
	}
}

// AuthError 凭证被服务端拒绝
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	return "cloud115: " + e.Reason.String()
}

// SignatureError 生成的 nonce 不满足服务端要求的 13 位十六进制格式。
// 原版客户端只打印警告继续发送，结果是一个服务端永远无法校验的密码散列，
// 这里改为直接失败。
type SignatureError struct {
	Nonce string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("cloud115: malformed nonce %q (want 13 hex chars, got %d)", e.Nonce, len(e.Nonce))
}
