package cloud115

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TaskRecord 一条离线任务在抓取时刻的快照。
// 任务本身就是它的"当前目录"，所以 DirectoryID 等于 FileID。
type TaskRecord struct {
	DirectoryID  string    `json:"directory_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	Name         string    `json:"name"`
	AddTime      time.Time `json:"add_time"`
	FileID       string    `json:"file_id"`
	InfoHash     string    `json:"info_hash"`
	LastUpdate   time.Time `json:"last_update"`
	LeftTime     int64     `json:"left_time"`
	Move         int       `json:"move"`
	Peers        int       `json:"peers"`
	PercentDone  int       `json:"percent_done"`
	RateDownload int64     `json:"rate_download"` // bytes/sec
	Size         int64     `json:"size"`
	SizeHuman    string    `json:"size_human"`
	Status       int       `json:"status"`
}

// FileRecord 网盘中的一个文件
type FileRecord struct {
	DirectoryID string `json:"directory_id"` // 所属目录
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	FileType    string `json:"file_type"` // 服务端字段名 ico
	Thumbnail   string `json:"thumbnail"`
}

// DirectoryRecord 网盘中的一个目录
type DirectoryRecord struct {
	DirectoryID string `json:"directory_id"`
	ParentID    string `json:"parent_id"`
	Name        string `json:"name"`
}

// taskPayload 服务端 task_lists 接口返回的原始字段
type taskPayload struct {
	AddTime      int64  `json:"add_time"`
	FileID       string `json:"file_id"`
	InfoHash     string `json:"info_hash"`
	LastUpdate   int64  `json:"last_update"`
	LeftTime     int64  `json:"left_time"`
	Move         int    `json:"move"`
	Name         string `json:"name"`
	Peers        int    `json:"peers"`
	PercentDone  int    `json:"percentDone"`
	RateDownload int64  `json:"rateDownload"`
	Size         int64  `json:"size"`
	Status       int    `json:"status"`
}

// record 把服务端字段名映射成统一的快照结构
func (p taskPayload) record() TaskRecord {
	return TaskRecord{
		DirectoryID:  p.FileID,
		Name:         p.Name,
		AddTime:      time.Unix(p.AddTime, 0).UTC(),
		FileID:       p.FileID,
		InfoHash:     p.InfoHash,
		LastUpdate:   time.Unix(p.LastUpdate, 0).UTC(),
		LeftTime:     p.LeftTime,
		Move:         p.Move,
		Peers:        p.Peers,
		PercentDone:  p.PercentDone,
		RateDownload: p.RateDownload,
		Size:         p.Size,
		SizeHuman:    humanSize(p.Size),
		Status:       p.Status,
	}
}

// humanSize 二进制单位的可读大小，如 "1.5 GiB"
func humanSize(size int64) string {
	return humanize.IBytes(uint64(size))
}
