package scheduler

import (
	"log"
	"time"

	"github.com/enokido/lixianTool/internal/config"
	"github.com/enokido/lixianTool/internal/service"
)

type Manager struct {
	ticker *time.Ticker
	quit   chan struct{}
}

func NewManager() *Manager {
	interval := 5 * time.Minute
	if config.AppConfig != nil && config.AppConfig.Cloud115.PollIntervalMinutes > 0 {
		interval = time.Duration(config.AppConfig.Cloud115.PollIntervalMinutes) * time.Minute
	}
	return &Manager{
		ticker: time.NewTicker(interval),
		quit:   make(chan struct{}),
	}
}

func (m *Manager) Start() {
	log.Println("Scheduler started...")
	go func() {
		for {
			select {
			case <-m.ticker.C:
				m.SyncOnce()
			case <-m.quit:
				m.ticker.Stop()
				return
			}
		}
	}()
	// 立即执行一次
	go m.SyncOnce()
}

func (m *Manager) Stop() {
	close(m.quit)
	log.Println("Scheduler stopped.")
}

// SyncOnce 触发一轮任务同步。没配置账号不算错误，安静跳过。
func (m *Manager) SyncOnce() {
	result, err := service.GetTaskService().SyncTasks()
	if err != nil {
		if err == service.ErrNoCredentials {
			log.Println("Scheduler: cloud115 account not configured yet, skipping sync")
			return
		}
		log.Printf("Scheduler: task sync failed: %v", err)
		return
	}
	log.Printf("Scheduler: synced %d tasks (%d new, %d updated)", result.Fetched, result.Created, result.Updated)
}
