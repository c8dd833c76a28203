package router

import (
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"

	"pagesim/internal/config"
)

// Kind はルーティング結果の種類
type Kind int

const (
	// KindServe はファイルを返す
	KindServe Kind = iota
	// KindRedirect はプレフィックス付きのURLへリダイレクトする
	KindRedirect
	// KindNotFound は対象ファイルもフォールバックも存在しない
	KindNotFound
	// KindMethodNotAllowed は GET / HEAD 以外のメソッド
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindServe:
		return "serve"
	case KindRedirect:
		return "redirect"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unknown"
	}
}

// Decision は1リクエストに対するルーティング結果
type Decision struct {
	Kind   Kind
	Status int

	// KindServe のときのみ有効
	ContentType   string
	ContentLength int
	Body          []byte // HEAD では nil
	Fallback      bool   // SPAフォールバックで返した場合 true

	// KindRedirect のときのみ有効
	Location string

	// 最初に解決したファイル (静的ディレクトリからの相対パス)
	Candidate string
}

// Router はリクエストパスを静的ディレクトリ上のファイルに対応付ける
//
// 状態を持たないため複数のゴルーチンから同時に呼び出してよい。
type Router struct {
	site config.SiteConfig
	fs   FileSystem
}

// New は新しいRouterを作成する
func New(site config.SiteConfig, fsys FileSystem) *Router {
	return &Router{
		site: site,
		fs:   fsys,
	}
}

// Route はメソッドとパスから応答内容を決定する
// reqPath はパーセントエンコードされたままのリクエストパスで、クエリ文字列を含めない
func (r *Router) Route(method, reqPath string) Decision {
	if method != http.MethodGet && method != http.MethodHead {
		return Decision{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed}
	}
	head := method == http.MethodHead

	// プレフィックスの外はプレフィックス付きへ飛ばす
	if !strings.HasPrefix(reqPath, r.site.BasePrefix) {
		return Decision{
			Kind:     KindRedirect,
			Status:   http.StatusFound,
			Location: r.site.BasePrefix + reqPath,
		}
	}

	candidate := r.Resolve(reqPath)
	log.Printf("リクエストパス: %s, 対応付け: %s", reqPath, path.Join(r.site.StaticRoot, candidate))

	if hasDotDot(candidate) {
		log.Printf("親ディレクトリを含むパスは読み込みません: %s", candidate)
	} else if r.fs.Exists(candidate) {
		data, err := r.fs.ReadAll(candidate)
		if err == nil {
			return serve(candidate, ContentType(candidate), data, head, false)
		}
		// 存在確認後に読めなかった場合も未存在と同じ扱いにする
		log.Printf("ファイルの読み込みに失敗: %s: %v", candidate, err)
	}

	// SPAフォールバック
	index := path.Join(r.site.PagesDir, r.site.IndexFile)
	log.Printf("ファイルが存在しないため %s にフォールバックします", path.Join(r.site.StaticRoot, index))

	if r.fs.Exists(index) {
		data, err := r.fs.ReadAll(index)
		if err == nil {
			return serve(candidate, "text/html", data, head, true)
		}
		log.Printf("フォールバックの読み込みに失敗: %s: %v", index, err)
	} else {
		log.Printf("%s も存在しません", path.Join(r.site.StaticRoot, index))
	}

	return Decision{
		Kind:      KindNotFound,
		Status:    http.StatusNotFound,
		Candidate: candidate,
	}
}

// Resolve はプレフィックス付きのパスを静的ディレクトリからの相対パスに変換する
//
// パスは正規化せずにそのまま対応付ける。末尾の "/" や空のセグメントを含む名前は
// 通常ファイルとして存在しないためフォールバックになる。
func (r *Router) Resolve(reqPath string) string {
	rel := strings.TrimPrefix(reqPath, r.site.BasePrefix)
	if rel == "" || rel == "/" {
		rel = "/" + r.site.IndexFile
	}
	if decoded, err := url.PathUnescape(rel); err == nil {
		rel = decoded
	}

	// ハッシュ付きアセットはページ用ディレクトリを経由せずルートから読む
	if strings.HasPrefix(rel, "/"+r.site.AssetsPath+"/") {
		return strings.TrimLeft(rel, "/")
	}

	return r.site.PagesDir + "/" + strings.TrimLeft(rel, "/")
}

// hasDotDot は name に ".." セグメントが含まれるかを返す
func hasDotDot(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func serve(candidate, contentType string, data []byte, head, fallback bool) Decision {
	d := Decision{
		Kind:          KindServe,
		Status:        http.StatusOK,
		ContentType:   contentType,
		ContentLength: len(data),
		Fallback:      fallback,
		Candidate:     candidate,
	}
	if !head {
		d.Body = data
	}
	return d
}
