package configs

import (
	"fmt"
	"time"
)

// RedisConfig 共享占位符存储配置
type RedisConfig struct {
	Enabled           bool          `json:"enabled" yaml:"enabled"`
	Host              string        `json:"host" yaml:"host" validate:"required_if=Enabled true"`
	Port              int           `json:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
	Password          string        `json:"password" yaml:"password"`
	Database          int           `json:"database" yaml:"db" validate:"min=0"`
	Key               string        `json:"key" yaml:"key"`
	DialTimeout       time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
	ConnectRetryCount int           `json:"connectRetryCount" yaml:"connectRetryCount" validate:"min=0"`
	ConnectRetryDelay time.Duration `json:"connectRetryDelay" yaml:"connectRetryDelay"`
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
