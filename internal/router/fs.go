package router

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNotFound はファイルが存在しないことを表す
var ErrNotFound = errors.New("ファイルが見つかりません")

// FileSystem はルーターが必要とするファイルアクセスの最小限の機能
//
// name は静的ディレクトリからの相対パスで、区切りは "/" を使う。
type FileSystem interface {
	// Exists は name が通常ファイルとして存在するかを返す
	Exists(name string) bool
	// ReadAll はファイル全体を読み込む。存在しない場合は ErrNotFound をラップしたエラーを返す
	ReadAll(name string) ([]byte, error)
}

// ioFS は io/fs.FS を FileSystem として扱うアダプタ
type ioFS struct {
	fsys fs.FS
}

// NewFS は io/fs.FS から FileSystem を作成する
// 実行時は os.DirFS、テストでは fstest.MapFS を渡す
func NewFS(fsys fs.FS) FileSystem {
	return &ioFS{fsys: fsys}
}

func (f *ioFS) Exists(name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	info, err := fs.Stat(f.fsys, name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (f *ioFS) ReadAll(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: 不正なパス %q", ErrNotFound, name)
	}
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("ファイルの読み込みに失敗: %w", err)
	}
	return data, nil
}
