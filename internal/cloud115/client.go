package cloud115

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent 必须伪装成老版本 IE，115 的 passport 接口校验这个头
const UserAgent = "Mozilla/4.0 (compatible; MSIE 6.0; Windows NT 5.1)"

const (
	defaultWebURL      = "http://115.com"
	defaultPassportURL = "http://passport.115.com"
)

// Client 115 网页版私有接口客户端。
// 同一个 Client 复用一个带 CookieJar 的 resty 会话，登录产生的 Cookie
// 会自动带到后续请求上，这也是登录"生效"的全部机制。
type Client struct {
	http        *resty.Client
	webURL      string
	passportURL string
	now         func() time.Time

	mu         sync.Mutex
	session    *Session
	signatures map[string]string
}

// Option 配置客户端
type Option func(*Client)

// WithEndpoints 覆盖默认域名，测试时指向 httptest server
func WithEndpoints(webURL, passportURL string) Option {
	return func(c *Client) {
		c.webURL = webURL
		c.passportURL = passportURL
	}
}

// WithClock 替换时间来源，便于测试 nonce 和时间戳
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		webURL:      defaultWebURL,
		passportURL: defaultPassportURL,
		now:         time.Now,
		signatures:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", UserAgent)

	return c
}

// Result 统一的接口响应：state 标志位加上解码后的 payload。
// 非 JSON 响应时 Data 为 nil，原始字节保留在 Raw 里。
type Result struct {
	State bool
	Raw   []byte
	Data  map[string]interface{}
}

// apiRequest 一次完整描述的 API 请求
type apiRequest struct {
	method string
	url    string
	params map[string]string
	form   map[string]string
}

// get GET 便捷调用，允许返回非 JSON 响应体
func (c *Client) get(url string, params map[string]string) (*Result, error) {
	resp, err := c.http.R().SetQueryParams(params).Get(url)
	return c.parse(url, resp, err, false)
}

// post POST 表单便捷调用，允许返回非 JSON 响应体
func (c *Client) post(url string, form map[string]string, params map[string]string) (*Result, error) {
	resp, err := c.http.R().SetQueryParams(params).SetFormData(form).Post(url)
	return c.parse(url, resp, err, false)
}

// send 发送一个必须返回 JSON 的 API 请求
func (c *Client) send(req apiRequest) (*Result, error) {
	r := c.http.R().SetQueryParams(req.params)
	if req.form != nil {
		r.SetFormData(req.form)
	}
	resp, err := r.Execute(req.method, req.url)
	return c.parse(req.url, resp, err, true)
}

// parse 把 HTTP 响应归一化成 Result。
// expectJSON 为 true 时解码失败视为协议错误，否则降级为 state=false 的原始响应。
func (c *Client) parse(url string, resp *resty.Response, err error, expectJSON bool) (*Result, error) {
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if resp.IsError() {
		return nil, &TransportError{URL: url, Status: resp.StatusCode()}
	}

	body := resp.Body()
	var data map[string]interface{}
	if jsonErr := json.Unmarshal(body, &data); jsonErr != nil {
		if expectJSON {
			return nil, &ProtocolError{Endpoint: url, Err: jsonErr}
		}
		return &Result{State: false, Raw: body}, nil
	}

	state, _ := data["state"].(bool)
	return &Result{State: state, Raw: body, Data: data}, nil
}

// timestamp 返回 digits 位的十进制时间戳，115 的接口混用 10 位秒和 13 位毫秒
func (c *Client) timestamp(digits int) string {
	now := c.now()
	if digits == 13 {
		return strconv.FormatInt(now.UnixMilli(), 10)
	}
	return strconv.FormatInt(now.Unix(), 10)
}
