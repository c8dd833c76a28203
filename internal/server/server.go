package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pagesim/internal/config"
	"pagesim/internal/metrics"
	"pagesim/internal/router"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	router     *router.Router
	metrics    *metrics.Metrics
	engine     *gin.Engine
	httpServer *http.Server
}

// New は静的ディレクトリを配信する新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	return NewWithFS(cfg, router.NewFS(os.DirFS(cfg.Site.StaticRoot)))
}

// NewWithFS は任意のファイルシステムを配信するServerインスタンスを作成する
func NewWithFS(cfg *config.Config, fsys router.FileSystem) *Server {
	engine := gin.New()
	// パスの補正はルーター側で行う
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.HandleMethodNotAllowed = false

	s := &Server{
		config:  cfg,
		router:  router.New(cfg.Site, fsys),
		metrics: metrics.NewMetrics(),
		engine:  engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	s.setupRoutes()

	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	s.engine.Use(gin.Recovery(), accessLog())

	// プレフィックス外のリダイレクトも含め、全てのパスをルーターで判定する
	s.engine.NoRoute(s.handleSite)
}

// Handler はサーバーのHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics はルーティング結果の集計を返す
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Start はサーバーを起動する
// 静的ディレクトリが無い場合はソケットを開かずにエラーを返す
func (s *Server) Start(ctx context.Context) error {
	if err := s.config.CheckStaticRoot(); err != nil {
		return err
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		log.Printf("HTTPサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Printf("処理件数: %v", s.metrics.GetSnapshot())
	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
