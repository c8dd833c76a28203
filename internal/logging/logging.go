// Package logging はログ出力先とginの動作モードを設定します。
package logging

import (
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"pagesim/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup は標準ロガーの出力先を設定する
// File が指定されていれば標準エラーに加えてローテーション付きのファイルにも書く
func Setup(cfg config.LogConfig) io.Closer {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, file)

	return file
}
