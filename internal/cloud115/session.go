package cloud115

import "fmt"

// Session 登录成功后的会话身份
type Session struct {
	UserID  string
	Profile map[string]interface{}
}

func (c *Client) loginURL() string {
	return c.passportURL + "/?ct=login&ac=ajax&is_ssl=1"
}

func (c *Client) logoutURL() string {
	return c.passportURL + "/?ac=logout"
}

func (c *Client) checkpointURL() string {
	return c.passportURL + "/?ct=ajax&ac=ajax_check_point"
}

// Login 执行签名登录。成功后会话绑定到 Client 上，后续请求靠 Cookie 续命。
// 失败时返回 AuthError，Reason 区分账号不存在 / 密码错误 / 其他。
func (c *Client) Login(username, password string) (*Session, error) {
	creds := Credentials{Username: username, Password: password}
	nonce, err := generateNonce(c.now())
	if err != nil {
		return nil, err
	}

	res, err := c.post(c.loginURL(), loginForm(creds, nonce), nil)
	if err != nil {
		return nil, err
	}
	if !res.State {
		return nil, &AuthError{Reason: authReason(res.Data)}
	}

	data, ok := res.Data["data"].(map[string]interface{})
	if !ok {
		return nil, &ProtocolError{Endpoint: "login", Field: "data"}
	}
	userID := stringField(data, "USER_ID")
	if userID == "" {
		return nil, &ProtocolError{Endpoint: "login", Field: "USER_ID"}
	}

	session := &Session{UserID: userID, Profile: data}
	c.mu.Lock()
	c.session = session
	c.signatures = make(map[string]string) // 新会话作废旧的签名缓存
	c.mu.Unlock()
	return session, nil
}

// HasLoggedIn 向 checkpoint 接口确认会话仍然有效。
// 注意 115 的语义是反的：state=false 表示"无需重新验证"，即仍在登录态；
// 其他任何响应都按未登录处理。没有 user id 时不发请求直接返回 false。
func (c *Client) HasLoggedIn() bool {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil || session.UserID == "" {
		return false
	}

	res, err := c.get(c.checkpointURL(), map[string]string{"user_id": session.UserID})
	if err != nil || res.Data == nil {
		return false
	}
	state, ok := res.Data["state"].(bool)
	return ok && !state
}

// Logout 只通知服务端，不清理本地状态，丢弃 Client 由调用方负责
func (c *Client) Logout() error {
	_, err := c.get(c.logoutURL(), nil)
	return err
}

// Session 返回当前绑定的会话，未登录时为 nil
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func authReason(data map[string]interface{}) AuthReason {
	if data == nil {
		return AuthUnknown
	}
	switch data["err_name"] {
	case "account":
		return AuthAccountNotFound
	case "passwd":
		return AuthWrongPassword
	default:
		return AuthUnknown
	}
}

// stringField 容忍服务端把数字字段在字符串和 number 之间来回改
func stringField(data map[string]interface{}, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
