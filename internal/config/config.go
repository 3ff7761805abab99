package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cloud115 Cloud115Config `mapstructure:"cloud115"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type Cloud115Config struct {
	PollIntervalMinutes int `mapstructure:"poll_interval_minutes"`
	TaskCount           int `mapstructure:"task_count"` // 每次同步最多拉多少条任务
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var AppConfig *Config

func LoadConfig(configPath string) error {
	v := viper.New()

	// 默认值
	v.SetDefault("server.port", 8115)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/lixian.db")
	v.SetDefault("cloud115.poll_interval_minutes", 5)
	v.SetDefault("cloud115.task_count", 60)
	v.SetDefault("log.level", "info")

	// 配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// 环境变量替换 (使用 LIXIAN_ 前缀)
	// 比如 LIXIAN_SERVER_PORT=9090
	v.SetEnvPrefix("LIXIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, use defaults
		fmt.Println("Config file not found, using defaults")
	}

	AppConfig = &Config{}
	if err := v.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
