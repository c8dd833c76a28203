package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pagesim/internal/router"
)

// handleSite は全リクエストをルーターに渡し、結果をレスポンスに書き出す
func (s *Server) handleSite(c *gin.Context) {
	// リダイレクト先をエンコードされたまま組み立てるため生のパスを渡す
	decision := s.router.Route(c.Request.Method, c.Request.URL.EscapedPath())
	s.metrics.Record(decision)

	switch decision.Kind {
	case router.KindServe:
		// HEAD でも GET と同じヘッダーになるよう長さは明示する
		c.Header("Content-Length", strconv.Itoa(decision.ContentLength))
		c.Data(decision.Status, decision.ContentType, decision.Body)

	case router.KindRedirect:
		// http.Redirect は本文を付けるため使わない
		c.Header("Location", decision.Location)
		c.Status(decision.Status)
		c.Writer.WriteHeaderNow()

	case router.KindMethodNotAllowed:
		c.Header("Allow", "GET, HEAD")
		c.String(decision.Status, "Method Not Allowed")

	default:
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", notFoundPage)
	}
}

// accessLog はリクエストごとにアクセスログを1行記録するミドルウェア
// リクエストIDはログの突き合わせ用でレスポンスには含めない
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		c.Next()

		log.Printf("[%s] %s %s %d %v",
			requestID, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
