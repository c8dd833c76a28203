package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrStaticRootMissing は静的ファイルのルートディレクトリが存在しないことを表す
var ErrStaticRootMissing = errors.New("静的ディレクトリが存在しません")

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Site   SiteConfig   `yaml:"site" toml:"site"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host" toml:"host" validate:"omitempty,ip|hostname"` // リッスンするホスト
	Port int    `yaml:"port" toml:"port" validate:"min=1,max=65535"`      // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout" toml:"read_timeout" validate:"gte=0"`   // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout" toml:"write_timeout" validate:"gte=0"` // 書き込みタイムアウト
}

// SiteConfig は配信するサイトの設定
type SiteConfig struct {
	// 公開URLの先頭に付くパス (例: /gitbook)
	BasePrefix string `yaml:"base_prefix" toml:"base_prefix" validate:"required,startswith=/,endsnotwith=/"`
	// 生成済みサイトのルートディレクトリ (例: out)
	StaticRoot string `yaml:"static_root" toml:"static_root" validate:"required"`
	// ページを格納するサブディレクトリ
	PagesDir string `yaml:"pages_dir" toml:"pages_dir" validate:"required"`
	// プレフィックスフォルダを経由せずルート直下から読むアセットのパス
	AssetsPath string `yaml:"assets_path" toml:"assets_path" validate:"required"`
	// SPAフォールバックに使うドキュメント
	IndexFile string `yaml:"index_file" toml:"index_file" validate:"required"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	// 空ならファイルには出力しない
	File string `yaml:"file" toml:"file"`
	// ローテーションするサイズ (MB) と保持する世代数
	MaxSizeMB  int  `yaml:"max_size_mb" toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int  `yaml:"max_backups" toml:"max_backups" validate:"gte=0"`
	Debug      bool `yaml:"debug" toml:"debug"`
}

var validate = validator.New()

// Default はデフォルト値で埋めた設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			BasePrefix: "/gitbook",
			StaticRoot: "out",
			PagesDir:   "gitbook",
			AssetsPath: "_next/static",
			IndexFile:  "index.html",
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load は設定を読み込む
// デフォルト値に .env と環境変数を重ねる
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// LoadFile は設定ファイル (YAML または TOML) を読み込む
// 環境変数はファイルの値より優先される
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("YAMLの解析に失敗: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("TOMLの解析に失敗: %w", err)
		}
	default:
		return nil, fmt.Errorf("未対応の設定ファイル形式: %q", ext)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// applyEnv は .env と環境変数で設定を上書きする
func (c *Config) applyEnv() error {
	// .env が無いのは正常
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env の読み込みに失敗: %w", err)
	}

	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Site.BasePrefix = getEnvOrDefault("BASE_PREFIX", c.Site.BasePrefix)
	c.Site.StaticRoot = getEnvOrDefault("STATIC_ROOT", c.Site.StaticRoot)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// "/" 単体のプレフィックスも endsnotwith で弾かれる
	return validate.Struct(c)
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// BrowseURL はブラウザで開くURLを返す
func (c *Config) BrowseURL() string {
	return fmt.Sprintf("http://localhost:%d%s/", c.Server.Port, c.Site.BasePrefix)
}

// StaticRootAbs は静的ディレクトリの絶対パスを返す
func (c *Config) StaticRootAbs() (string, error) {
	abs, err := filepath.Abs(c.Site.StaticRoot)
	if err != nil {
		return "", fmt.Errorf("絶対パスの解決に失敗: %w", err)
	}
	return abs, nil
}

// CheckStaticRoot は静的ディレクトリが存在するディレクトリか確認する
func (c *Config) CheckStaticRoot() error {
	abs, err := c.StaticRootAbs()
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStaticRootMissing, abs)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s はディレクトリではありません", ErrStaticRootMissing, abs)
	}

	return nil
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
