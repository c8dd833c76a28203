package server

import _ "embed"

// notFoundPage は対象ファイルもフォールバックも無いときに返すページ
//
//go:embed assets/notfound.html
var notFoundPage []byte
