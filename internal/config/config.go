package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	// 游戏服务端地址（host:port），ws/wss 由 server_secure 决定
	ServerHost   string `mapstructure:"server_host"`
	ServerSecure bool   `mapstructure:"server_secure"`

	LogLevel string `mapstructure:"log_level"`

	// 旁观状态接口的监听地址
	StatusHost string `mapstructure:"status_host"`
	StatusPort int    `mapstructure:"status_port"`

	// 音效音量 0..1
	Volume float64 `mapstructure:"volume"`

	// 连接建立后是否自动发送开始意图
	AutoStart bool `mapstructure:"auto_start"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	v := viper.New()

	v.SetConfigFile("app_config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("server_host", "127.0.0.1:8000")
	v.SetDefault("server_secure", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("status_host", "127.0.0.1")
	v.SetDefault("status_port", 9090)
	v.SetDefault("volume", 0.6)
	v.SetDefault("auto_start", true)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时全部走默认值，其他错误仍然终止
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("加载配置失败: %w", err))
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	return &config
}
