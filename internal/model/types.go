package model

import (
	"time"

	"gorm.io/gorm"
)

// User 面板登录用户
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Memo         string `json:"memo,omitempty"`
}

// TaskSnapshot 一条 115 离线任务的持久化快照。
// 每次同步按 info_hash 更新进度字段，不保留历史版本。
type TaskSnapshot struct {
	gorm.Model
	InfoHash     string    `json:"info_hash" gorm:"uniqueIndex"`
	FileID       string    `json:"file_id"`
	DirectoryID  string    `json:"directory_id"`
	Name         string    `json:"name"`
	AddTime      time.Time `json:"add_time"`
	LastUpdate   time.Time `json:"last_update"`
	LeftTime     int64     `json:"left_time"`
	Peers        int       `json:"peers"`
	PercentDone  int       `json:"percent_done"`
	RateDownload int64     `json:"rate_download"`
	Size         int64     `json:"size"`
	SizeHuman    string    `json:"size_human"`
	Status       int       `json:"status"`
	SyncedAt     time.Time `json:"synced_at"` // 最近一次出现在远端列表的时间
}

// GlobalConfig 存储全局配置 (单用户场景，放 DB 里方便迁移)
type GlobalConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	ConfigKey115Username = "cloud115_username"
	ConfigKey115Password = "cloud115_password"
)
