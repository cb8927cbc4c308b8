package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string   `env:"LISTEN_ADDR"`
	Port          string   `env:"PORT" envDefault:"3001"`
	GinMode       string   `env:"GIN_MODE" envDefault:"release"`
	Environment   string   `env:"APP_ENV" envDefault:"production"`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	RootDir       string   `env:"ROOT_DIR" envDefault:"."`
	PublicDir     string   `env:"PUBLIC_DIR" envDefault:"public"`
	DistDir       string   `env:"DIST_DIR" envDefault:"dist"`
	KVDriver      string   `env:"KV_DRIVER" envDefault:"sqlite"`
	DatabasePath  string   `env:"DATABASE_PATH" envDefault:"data/ogevents.db"`
	BadgerDir     string   `env:"BADGER_DIR" envDefault:"data/kv"`
	SessionSecret string   `env:"SESSION_SECRET" envDefault:"ogevents-dev-secret"`
	AdminLogin    string   `env:"ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword string   `env:"ADMIN_PASSWORD" envDefault:"ogevents2025"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// IsDevelopment reports whether the server runs with development logging.
func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "development")
}

// Resolve 将相对路径解析到 RootDir 之下，绝对路径原样返回。
func (c AppConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RootDir, path)
}

// Load 从环境变量读取应用配置，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	origins := make([]string, 0, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.CORSOrigins = origins

	return cfg, nil
}
