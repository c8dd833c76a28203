package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg == nil {
		t.Fatal("設定がnilです")
	}

	// サーバー設定の検証
	if cfg.Server.Host == "" {
		t.Error("サーバーホストが設定されていません")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		t.Errorf("無効なポート番号: %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		t.Error("読み込みタイムアウトが設定されていません")
	}

	// サイト設定の検証
	if cfg.Site.BasePrefix == "" {
		t.Error("ベースプレフィックスが設定されていません")
	}
	if cfg.Site.StaticRoot == "" {
		t.Error("静的ディレクトリが設定されていません")
	}
}

// TestDefault はデフォルト値をテストする
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8080 {
		t.Errorf("デフォルトポートが一致しません: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Site.BasePrefix != "/gitbook" {
		t.Errorf("デフォルトプレフィックスが一致しません: got %s", cfg.Site.BasePrefix)
	}
	if cfg.Site.StaticRoot != "out" {
		t.Errorf("デフォルト静的ディレクトリが一致しません: got %s", cfg.Site.StaticRoot)
	}
	if cfg.Site.PagesDir != "gitbook" || cfg.Site.AssetsPath != "_next/static" || cfg.Site.IndexFile != "index.html" {
		t.Errorf("サイトのデフォルト値が一致しません: %+v", cfg.Site)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("デフォルト設定が検証に失敗しました: %v", err)
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:      "正常な設定",
			modify:    func(c *Config) {},
			expectErr: false,
		},
		{
			name:      "無効なポート番号",
			modify:    func(c *Config) { c.Server.Port = 99999 },
			expectErr: true,
		},
		{
			name:      "ポート0",
			modify:    func(c *Config) { c.Server.Port = 0 },
			expectErr: true,
		},
		{
			name:      "プレフィックスなし",
			modify:    func(c *Config) { c.Site.BasePrefix = "" },
			expectErr: true,
		},
		{
			name:      "スラッシュで始まらないプレフィックス",
			modify:    func(c *Config) { c.Site.BasePrefix = "gitbook" },
			expectErr: true,
		},
		{
			name:      "スラッシュで終わるプレフィックス",
			modify:    func(c *Config) { c.Site.BasePrefix = "/gitbook/" },
			expectErr: true,
		},
		{
			name:      "スラッシュのみのプレフィックス",
			modify:    func(c *Config) { c.Site.BasePrefix = "/" },
			expectErr: true,
		},
		{
			name:      "多段のプレフィックス",
			modify:    func(c *Config) { c.Site.BasePrefix = "/docs/v2" },
			expectErr: false,
		},
		{
			name:      "静的ディレクトリなし",
			modify:    func(c *Config) { c.Site.StaticRoot = "" },
			expectErr: true,
		},
		{
			name:      "インデックスファイルなし",
			modify:    func(c *Config) { c.Site.IndexFile = "" },
			expectErr: true,
		},
		{
			name:      "負のタイムアウト",
			modify:    func(c *Config) { c.Server.ReadTimeout = -time.Second },
			expectErr: true,
		},
		{
			name:      "ホスト名",
			modify:    func(c *Config) { c.Server.Host = "localhost" },
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	expected := "192.168.1.100:9090"
	actual := cfg.ServerAddress()

	if actual != expected {
		t.Errorf("サーバーアドレスが一致しません: got %s, want %s", actual, expected)
	}
}

// TestBrowseURL はブラウザ用URLの生成をテストする
func TestBrowseURL(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 3000

	expected := "http://localhost:3000/gitbook/"
	if actual := cfg.BrowseURL(); actual != expected {
		t.Errorf("URLが一致しません: got %s, want %s", actual, expected)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("PORT", "9999")
	t.Setenv("BASE_PREFIX", "/docs")
	t.Setenv("STATIC_ROOT", "public")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("環境変数のホストが反映されていません: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("環境変数のポートが反映されていません: got %d, want 9999", cfg.Server.Port)
	}
	if cfg.Site.BasePrefix != "/docs" {
		t.Errorf("環境変数のプレフィックスが反映されていません: got %s", cfg.Site.BasePrefix)
	}
	if cfg.Site.StaticRoot != "public" {
		t.Errorf("環境変数の静的ディレクトリが反映されていません: got %s", cfg.Site.StaticRoot)
	}
}

// TestEnvironmentInvalidPrefix は不正な環境変数が検証で弾かれることをテストする
func TestEnvironmentInvalidPrefix(t *testing.T) {
	t.Setenv("BASE_PREFIX", "docs/")

	if _, err := Load(); err == nil {
		t.Error("不正なプレフィックスでエラーが期待されました")
	}
}

// TestLoadFile は設定ファイルの読み込みをテストする
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"pagesim.yaml": `
server:
  port: 9001
  read_timeout: 3s
site:
  base_prefix: /handbook
  static_root: build
`,
		"pagesim.toml": `
[server]
port = 9001
read_timeout = "3s"

[site]
base_prefix = "/handbook"
static_root = "build"
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
			}

			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("設定ファイルの読み込みに失敗しました: %v", err)
			}

			if cfg.Server.Port != 9001 {
				t.Errorf("ポートが一致しません: got %d", cfg.Server.Port)
			}
			if cfg.Server.ReadTimeout != 3*time.Second {
				t.Errorf("タイムアウトが一致しません: got %v", cfg.Server.ReadTimeout)
			}
			if cfg.Site.BasePrefix != "/handbook" || cfg.Site.StaticRoot != "build" {
				t.Errorf("サイト設定が一致しません: %+v", cfg.Site)
			}
			// ファイルに無い値はデフォルトのまま
			if cfg.Site.PagesDir != "gitbook" {
				t.Errorf("デフォルト値が失われました: got %s", cfg.Site.PagesDir)
			}
		})
	}
}

// TestLoadFileErrors は設定ファイルの異常系をテストする
func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "pagesim.ini")
	if err := os.WriteFile(unknown, []byte("port=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); err == nil {
		t.Error("未対応の拡張子でエラーが期待されました")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("存在しないファイルでエラーが期待されました")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("site:\n  base_prefix: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(invalid); err == nil {
		t.Error("検証エラーが期待されました")
	}
}

// TestCheckStaticRoot は静的ディレクトリの存在確認をテストする
func TestCheckStaticRoot(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Site.StaticRoot = dir
	if err := cfg.CheckStaticRoot(); err != nil {
		t.Errorf("存在するディレクトリでエラーになりました: %v", err)
	}

	cfg.Site.StaticRoot = filepath.Join(dir, "missing")
	if err := cfg.CheckStaticRoot(); !errors.Is(err, ErrStaticRootMissing) {
		t.Errorf("ErrStaticRootMissing が期待されました: got %v", err)
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Site.StaticRoot = file
	if err := cfg.CheckStaticRoot(); !errors.Is(err, ErrStaticRootMissing) {
		t.Errorf("ファイルを指定した場合 ErrStaticRootMissing が期待されました: got %v", err)
	}
}

// TestDotEnv は .env の読み込みをテストする
func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// 既存の環境変数は .env より優先されるため一旦消す
	t.Setenv("STATIC_ROOT", "")
	if err := os.Unsetenv("STATIC_ROOT"); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STATIC_ROOT=dist\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	if cfg.Site.StaticRoot != "dist" {
		t.Errorf(".env の値が反映されていません: got %s", cfg.Site.StaticRoot)
	}
}

// TestDotEnvMalformed は壊れた .env がエラーになることをテストする
func TestDotEnvMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STATIC_ROOT=\"unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("壊れた .env でエラーが期待されました")
	}

	yamlPath := filepath.Join(dir, "pagesim.yaml")
	if err := os.WriteFile(yamlPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(yamlPath); err == nil {
		t.Error("壊れた .env で LoadFile もエラーが期待されました")
	}
}
