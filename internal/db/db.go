package db

import (
	"log"
	"os"
	"path/filepath"

	"github.com/enokido/lixianTool/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(storagePath string) {
	var err error

	// 确保存储目录存在
	dir := filepath.Dir(storagePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create storage directory: %v", err)
	}

	DB, err = gorm.Open(sqlite.Open(storagePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// 自动迁移模式
	err = DB.AutoMigrate(&model.User{}, &model.TaskSnapshot{}, &model.GlobalConfig{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
