package router

import "strings"

// contentTypes は拡張子と Content-Type の対応表
// 先頭から順に判定し、最初に一致したものを使う
var contentTypes = []struct {
	suffix      string
	contentType string
}{
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".woff2", "font/woff2"},
	{".svg", "image/svg+xml"},
	{".ico", "image/x-icon"},
}

// ContentType はファイル名の拡張子から Content-Type を決める
// 大文字小文字は区別し、該当しなければ text/html を返す
func ContentType(name string) string {
	for _, ct := range contentTypes {
		if strings.HasSuffix(name, ct.suffix) {
			return ct.contentType
		}
	}
	return "text/html"
}
