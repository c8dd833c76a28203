// Package main は設定を上書きできるサーバーコマンドの実装です
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pagesim/internal/config"
	"pagesim/internal/logging"
	"pagesim/internal/server"
)

var opts struct {
	configFile string
	host       string
	port       int
	root       string
	prefix     string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:           "server [flags]",
	Short:         "サブパス配信を再現する静的サイトのプレビューサーバー",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "設定ファイル (YAML / TOML)")
	flags.StringVar(&opts.host, "host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
	flags.IntVarP(&opts.port, "port", "p", 0, "サーバーのポート (デフォルト: 8080)")
	flags.StringVar(&opts.root, "root", "", "静的ファイルのディレクトリ (デフォルト: out)")
	flags.StringVar(&opts.prefix, "prefix", "", "ベースプレフィックス (デフォルト: /gitbook)")
	flags.BoolVar(&opts.debug, "debug", false, "ginをデバッグモードで動かす")
}

// loadConfig は設定を読み込み、コマンドラインオプションで上書きする
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.root != "" {
		cfg.Site.StaticRoot = opts.root
	}
	if opts.prefix != "" {
		cfg.Site.BasePrefix = opts.prefix
	}
	if opts.debug {
		cfg.Log.Debug = true
	}

	// 上書き後の値も検証する
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	closer := logging.Setup(cfg.Log)
	defer closer.Close()

	if err := server.PrintBanner(os.Stdout, cfg); err != nil {
		return err
	}

	srv := server.New(cfg)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	color.New(color.FgHiYellow).Println("サーバーを停止しました")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}
