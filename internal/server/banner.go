package server

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pagesim/internal/config"
)

// PrintBanner は起動時の案内を出力する
func PrintBanner(w io.Writer, cfg *config.Config) error {
	root, err := cfg.StaticRootAbs()
	if err != nil {
		return err
	}

	bold := color.New(color.Bold, color.FgHiGreen)
	cyan := color.New(color.FgHiCyan)

	fmt.Fprintln(w, bold.Sprint("静的ホスティング プレビューサーバー"))
	fmt.Fprintf(w, "静的ファイルディレクトリ: %s\n", cyan.Sprint(root))
	fmt.Fprintf(w, "アクセスURL: %s\n", cyan.Sprint(cfg.BrowseURL()))
	fmt.Fprintf(w, "公開時のURL: https://<ユーザー名>.github.io%s/\n", cfg.Site.BasePrefix)
	fmt.Fprintln(w, "Ctrl+C で停止します")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	return nil
}
