package cloud115

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// TasksPerPage 服务端固定的离线任务分页大小
const TasksPerPage = 30

const signOfflineSpace = "offline_space"

type taskListResponse struct {
	State bool          `json:"state"`
	Tasks []taskPayload `json:"tasks"`
}

type offlineSpaceResponse struct {
	State bool   `json:"state"`
	Sign  string `json:"sign"`
}

// offlineSign 获取访问离线空间所需的签名 token。
// 每个会话只取一次，之后从缓存读，服务端没有提供刷新语义。
func (c *Client) offlineSign() (string, error) {
	c.mu.Lock()
	if sign, ok := c.signatures[signOfflineSpace]; ok {
		c.mu.Unlock()
		return sign, nil
	}
	c.mu.Unlock()

	res, err := c.send(apiRequest{
		method: http.MethodGet,
		url:    c.webURL + "/",
		params: map[string]string{
			"ct": "offline",
			"ac": "space",
			"_":  c.timestamp(13),
		},
	})
	if err != nil {
		return "", err
	}

	var out offlineSpaceResponse
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		return "", &ProtocolError{Endpoint: "offline_space", Err: err}
	}
	if !out.State || out.Sign == "" {
		return "", &ProtocolError{Endpoint: "offline_space", Field: "sign"}
	}

	c.mu.Lock()
	c.signatures[signOfflineSpace] = out.Sign
	c.mu.Unlock()
	return out.Sign, nil
}

// taskPage 拉取一页任务。state=false 表示没有更多任务，不是错误。
func (c *Client) taskPage(page int) ([]taskPayload, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil || session.UserID == "" {
		return nil, &AuthError{Reason: AuthUnknown}
	}

	sign, err := c.offlineSign()
	if err != nil {
		return nil, err
	}

	res, err := c.send(apiRequest{
		method: http.MethodPost,
		url:    c.webURL + "/lixian/",
		params: map[string]string{"ct": "lixian", "ac": "task_lists"},
		form: map[string]string{
			"page": strconv.Itoa(page),
			"uid":  session.UserID,
			"sign": sign,
			"time": c.timestamp(10),
		},
	})
	if err != nil {
		return nil, err
	}

	var out taskListResponse
	if err := json.Unmarshal(res.Raw, &out); err != nil {
		return nil, &ProtocolError{Endpoint: "task_lists", Err: err}
	}
	if !out.State {
		return nil, nil
	}
	return out.Tasks, nil
}

// GetTasks 按服务端顺序取最多 count 条离线任务，跨页拼接。
// 页号从 1 递增，拿到短页视为数据用尽，实际任务少于 count 时不算错误。
func (c *Client) GetTasks(count int) ([]TaskRecord, error) {
	if count <= 0 {
		count = TasksPerPage
	}

	var records []TaskRecord
	for page := 1; len(records) < count; page++ {
		tasks, err := c.taskPage(page)
		if err != nil {
			return nil, err
		}
		for _, raw := range tasks {
			records = append(records, raw.record())
			if len(records) == count {
				break
			}
		}
		if len(tasks) < TasksPerPage {
			break
		}
	}
	return records, nil
}

// ListOptions 目录列表参数，对应服务端的 o/offset/limit/asc
type ListOptions struct {
	Order  string
	Offset int
	Limit  int
	Asc    bool
}

// ListDirectory 列目录内容。
// TODO: 接口形态已确认 (aid/o/asc/offset/show_dir/limit/natsort)，等抓包补齐响应字段
func (c *Client) ListDirectory(directoryID string, opts ListOptions) ([]FileRecord, error) {
	return nil, ErrNotImplemented
}

// AddTaskURL 添加 URL 离线任务 (VIP)
func (c *Client) AddTaskURL(url string) error {
	return ErrNotImplemented
}

// AddTaskBT 添加 BT 离线任务
func (c *Client) AddTaskBT(torrent []byte) error {
	return ErrNotImplemented
}

// DeleteTask 删除离线任务
func (c *Client) DeleteTask(infoHash string) error {
	return ErrNotImplemented
}
