package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"

	"pagesim/internal/config"
	"pagesim/internal/logging"
	"pagesim/internal/server"
)

func main() {
	os.Exit(run())
}

// run はサーバーを起動し、プロセスの終了コードを返す
// os.Exit は main でだけ呼び、defer が必ず実行されるようにする
func run() int {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Printf("設定の読み込みに失敗しました: %v", err)
		return 1
	}

	if err := server.PrintBanner(os.Stdout, cfg); err != nil {
		log.Printf("静的ディレクトリの解決に失敗しました: %v", err)
		return 1
	}

	// 静的ディレクトリが無ければソケットを開かずに終了する
	if err := cfg.CheckStaticRoot(); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "エラー: %v\n", err)
		return 1
	}

	closer := logging.Setup(cfg.Log)
	defer closer.Close()

	// サーバーを作成
	srv := server.New(cfg)

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		log.Printf("サーバーの起動に失敗しました: %v", err)
		return 1
	}

	color.New(color.FgHiYellow).Println("サーバーを停止しました")
	return 0
}
