package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/enokido/lixianTool/internal/cloud115"
	"github.com/enokido/lixianTool/internal/config"
	"github.com/enokido/lixianTool/internal/db"
	"github.com/enokido/lixianTool/internal/event"
	"github.com/enokido/lixianTool/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoCredentials 还没有配置过 115 账号
var ErrNoCredentials = errors.New("cloud115 account is not configured")

// TaskService 串起 115 客户端和本地存储：登录远端、拉任务、落快照
type TaskService struct {
	Client *cloud115.Client
	DB     *gorm.DB

	mu sync.Mutex // 串行化同步，scheduler 和手动触发可能撞车
}

var (
	taskServiceOnce sync.Once
	taskService     *TaskService
)

// GetTaskService 全局单例。115 的会话绑在 Cookie 上，
// scheduler 和 API handler 必须共用同一个 Client。
func GetTaskService() *TaskService {
	taskServiceOnce.Do(func() {
		taskService = &TaskService{
			Client: cloud115.NewClient(),
			DB:     db.DB,
		}
	})
	return taskService
}

// SaveCredentials 把 115 账号写进 GlobalConfig，重启后还能自动登录
func (s *TaskService) SaveCredentials(username, password string) error {
	rows := []model.GlobalConfig{
		{Key: model.ConfigKey115Username, Value: username},
		{Key: model.ConfigKey115Password, Value: password},
	}
	for _, row := range rows {
		if err := s.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) storedCredentials() (string, string, error) {
	var userRow, passRow model.GlobalConfig
	if err := s.DB.First(&userRow, "key = ?", model.ConfigKey115Username).Error; err != nil {
		return "", "", ErrNoCredentials
	}
	if err := s.DB.First(&passRow, "key = ?", model.ConfigKey115Password).Error; err != nil {
		return "", "", ErrNoCredentials
	}
	if userRow.Value == "" || passRow.Value == "" {
		return "", "", ErrNoCredentials
	}
	return userRow.Value, passRow.Value, nil
}

// LoginRemote 用给定凭证登录 115 并保存凭证
func (s *TaskService) LoginRemote(username, password string) error {
	if _, err := s.Client.Login(username, password); err != nil {
		return err
	}
	return s.SaveCredentials(username, password)
}

// EnsureLogin 确认会话有效，失效则用存储的凭证重新登录
func (s *TaskService) EnsureLogin() error {
	if s.Client.HasLoggedIn() {
		return nil
	}
	username, password, err := s.storedCredentials()
	if err != nil {
		return err
	}
	if _, err := s.Client.Login(username, password); err != nil {
		event.GlobalBus.Publish(event.EventSessionExpired, err.Error())
		return err
	}
	return nil
}

// SyncTasks 拉取远端任务列表并更新本地快照
func (s *TaskService) SyncTasks() (*event.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.EnsureLogin(); err != nil {
		event.GlobalBus.Publish(event.EventTaskSyncFailed, &event.SyncResult{Err: err.Error()})
		return nil, err
	}

	count := 60
	if config.AppConfig != nil && config.AppConfig.Cloud115.TaskCount > 0 {
		count = config.AppConfig.Cloud115.TaskCount
	}

	records, err := s.Client.GetTasks(count)
	if err != nil {
		event.GlobalBus.Publish(event.EventTaskSyncFailed, &event.SyncResult{Err: err.Error()})
		return nil, err
	}

	result := &event.SyncResult{Fetched: len(records), SyncedAt: time.Now()}
	for _, rec := range records {
		var snap model.TaskSnapshot
		err := s.DB.Where("info_hash = ?", rec.InfoHash).First(&snap).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			snap = snapshotFromRecord(rec, result.SyncedAt)
			if err := s.DB.Create(&snap).Error; err != nil {
				log.Printf("TaskService: failed to create snapshot for %s: %v", rec.InfoHash, err)
				continue
			}
			result.Created++
		case err != nil:
			log.Printf("TaskService: snapshot lookup failed for %s: %v", rec.InfoHash, err)
		default:
			applyRecord(&snap, rec, result.SyncedAt)
			if err := s.DB.Save(&snap).Error; err != nil {
				log.Printf("TaskService: failed to update snapshot for %s: %v", rec.InfoHash, err)
				continue
			}
			result.Updated++
		}
	}

	event.GlobalBus.Publish(event.EventTaskSyncComplete, result)
	return result, nil
}

// ListSnapshots 面板展示用，按添加时间倒序
func (s *TaskService) ListSnapshots() ([]model.TaskSnapshot, error) {
	var snaps []model.TaskSnapshot
	if err := s.DB.Order("add_time desc").Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func snapshotFromRecord(rec cloud115.TaskRecord, syncedAt time.Time) model.TaskSnapshot {
	snap := model.TaskSnapshot{InfoHash: rec.InfoHash}
	applyRecord(&snap, rec, syncedAt)
	return snap
}

func applyRecord(snap *model.TaskSnapshot, rec cloud115.TaskRecord, syncedAt time.Time) {
	snap.FileID = rec.FileID
	snap.DirectoryID = rec.DirectoryID
	snap.Name = rec.Name
	snap.AddTime = rec.AddTime
	snap.LastUpdate = rec.LastUpdate
	snap.LeftTime = rec.LeftTime
	snap.Peers = rec.Peers
	snap.PercentDone = rec.PercentDone
	snap.RateDownload = rec.RateDownload
	snap.Size = rec.Size
	snap.SizeHuman = rec.SizeHuman
	snap.Status = rec.Status
	snap.SyncedAt = syncedAt
}
