package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Auth   AuthConfig   `yaml:"auth"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`        // 非空时启用 JWT 模式
	AllowGuests     bool   `yaml:"allow_guests"`      // 允许无令牌的游客连接
	SessionTTLHours int    `yaml:"session_ttl_hours"` // 会话索引过期时间（小时）
}

// GameConfig 游戏流程配置
type GameConfig struct {
	WordSelectTimeout int `yaml:"word_select_timeout"` // 选词超时（秒）
	EndTurnPause      int `yaml:"end_turn_pause"`      // 回合结束停顿（秒）
	EndGamePause      int `yaml:"end_game_pause"`      // 结算展示时长（秒）
	MinPlayers        int `yaml:"min_players"`         // 开始游戏最少人数
	TimeFloor         int `yaml:"time_floor"`          // 猜中压缩剩余时间的下限（秒）
}

// WordSelectTimeoutDuration 返回选词超时时长
func (c *GameConfig) WordSelectTimeoutDuration() time.Duration {
	return time.Duration(c.WordSelectTimeout) * time.Second
}

// EndTurnPauseDuration 返回回合结束停顿时长
func (c *GameConfig) EndTurnPauseDuration() time.Duration {
	return time.Duration(c.EndTurnPause) * time.Second
}

// EndGamePauseDuration 返回结算展示时长
func (c *GameConfig) EndGamePauseDuration() time.Duration {
	return time.Duration(c.EndGamePause) * time.Second
}

// TimeFloorDuration 返回压缩剩余时间的下限
func (c *GameConfig) TimeFloorDuration() time.Duration {
	return time.Duration(c.TimeFloor) * time.Second
}

// SessionTTL 返回会话索引过期时长
func (c *AuthConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
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
	return &cfg, nil
}

// applyDefaults 设置默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Auth.SessionTTLHours == 0 {
		c.Auth.SessionTTLHours = 24
	}
	if c.Game.WordSelectTimeout == 0 {
		c.Game.WordSelectTimeout = 15
	}
	if c.Game.EndTurnPause == 0 {
		c.Game.EndTurnPause = 5
	}
	if c.Game.EndGamePause == 0 {
		c.Game.EndGamePause = 15
	}
	if c.Game.MinPlayers == 0 {
		c.Game.MinPlayers = 2
	}
	if c.Game.TimeFloor == 0 {
		c.Game.TimeFloor = 30
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
