package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/utils"
)

// EngineConfig mock 引擎配置
type EngineConfig struct {
	MocksDir     string            `yaml:"mocksDir" validate:"required"`
	RuleFileExt  string            `yaml:"ruleFileExt" validate:"startswith=."`
	Watch        bool              `yaml:"watch"`
	Placeholders map[string]string `yaml:"placeholders"`
	Log          utils.LogConfig   `yaml:"log"`
	RuleRepo     RuleRepoConfig    `yaml:"ruleRepo"`
	Redis        RedisConfig       `yaml:"redis"`
	Proxy        ProxyConfig       `yaml:"proxy"`
}

// RuleRepoConfig 规则加载参数
type RuleRepoConfig struct {
	MocksDir     string `yaml:"-"`
	RuleFileExt  string `yaml:"-"`
	LoadPoolSize int    `json:"loadPoolSize" yaml:"loadPoolSize" validate:"min=0"`
}

type ProxyConfig struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

const (
	defaultRuleFileExt      = model.RuleFileExt
	defaultLoadPoolSize     = 4
	defaultRedisPort        = 6379
	defaultRedisKey         = "tail_mock:placeholders"
	defaultRedisRetryCount  = 3
	defaultRedisRetryDelay  = 200 * time.Millisecond
	defaultRedisDialTimeout = 2 * time.Second
	defaultProxyListenAddr  = "127.0.0.1:8089"
)

// NewEngineConfig returns a config for mocksDir with every default applied.
func NewEngineConfig(mocksDir string) *EngineConfig {
	cfg := &EngineConfig{MocksDir: mocksDir}
	cfg.applyDefaults()
	return cfg
}

// LoadEngineConfig 加载配置
func LoadEngineConfig() (*EngineConfig, error) {
	return LoadEngineConfigFile(getConfigPath())
}

func LoadEngineConfigFile(path string) (*EngineConfig, error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &EngineConfig{}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func NewRuleRepoConfig(c *EngineConfig) *RuleRepoConfig {
	repoConfig := c.RuleRepo
	repoConfig.MocksDir = c.MocksDir
	repoConfig.RuleFileExt = c.RuleFileExt
	return &repoConfig
}

func NewRedisConfig(c *EngineConfig) *RedisConfig {
	return &c.Redis
}

func NewLogConfig(c *EngineConfig) utils.LogConfig {
	return c.Log
}

// getConfigPath 获取配置文件路径
func getConfigPath() string {
	// 优先使用环境变量
	if path := os.Getenv("MOCK_CONFIG_PATH"); path != "" {
		return path
	}

	env := os.Getenv("MOCK_ENV")
	if env == "" {
		env = "local"
	}

	return fmt.Sprintf("rule.%s.yaml", env)
}

func (c *EngineConfig) applyDefaults() {
	if c.RuleFileExt == "" {
		c.RuleFileExt = defaultRuleFileExt
	}
	if c.RuleRepo.LoadPoolSize == 0 {
		c.RuleRepo.LoadPoolSize = defaultLoadPoolSize
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = defaultRedisPort
	}
	if c.Redis.Key == "" {
		c.Redis.Key = defaultRedisKey
	}
	if c.Redis.ConnectRetryCount == 0 {
		c.Redis.ConnectRetryCount = defaultRedisRetryCount
	}
	if c.Redis.ConnectRetryDelay == 0 {
		c.Redis.ConnectRetryDelay = defaultRedisRetryDelay
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = defaultRedisDialTimeout
	}
	if c.Proxy.Listen == "" {
		c.Proxy.Listen = defaultProxyListenAddr
	}
}

// Validate 验证配置
func (c *EngineConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	info, err := os.Stat(c.MocksDir)
	if err != nil {
		return fmt.Errorf("mocks directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mocks directory %s is not a directory", c.MocksDir)
	}

	return nil
}
