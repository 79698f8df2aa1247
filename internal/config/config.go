package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置（storage.backend 为 redis 时使用）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig 房间持久化配置
type StorageConfig struct {
	Backend        string `yaml:"backend"` // file 或 redis
	Dir            string `yaml:"dir"`     // 文件后端的快照目录
	RetentionHours int    `yaml:"retention_hours"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MaxPlayers int `yaml:"max_players"`
	StartYear  int `yaml:"start_year"`
	StartMonth int `yaml:"start_month"`
	StartDay   int `yaml:"start_day"`
}

// RetentionDuration 返回快照保留期，0 表示不做定期清理
func (c *StorageConfig) RetentionDuration() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8765
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1024
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "saved_rooms"
	}
	if c.Game.MaxPlayers == 0 {
		c.Game.MaxPlayers = 20
	}
	if c.Game.StartYear == 0 {
		c.Game.StartYear = 1520
	}
	if c.Game.StartMonth == 0 {
		c.Game.StartMonth = 1
	}
	if c.Game.StartDay == 0 {
		c.Game.StartDay = 1
	}
}

// applyEnv 环境变量覆盖（配合 .env 使用）
func (c *Config) applyEnv() {
	if v := os.Getenv("EYALET_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("EYALET_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("EYALET_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("EYALET_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
}
