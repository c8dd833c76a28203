// Package server は、静的ホスティングのサブパス配信を再現するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動と停止、リクエストのルーティング結果の
// 書き出し、アクセスログの記録を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 全リクエストを router パッケージの Route に渡す
//   - ルーティング結果 (200 / 302 / 404 / 405) をレスポンスに変換する
//   - ルーティング結果の件数を記録し、停止時にログへ出す
//
// 仕様:
//   - ルーティングはginのNoRouteに集約する
//   - メソッドは GET と HEAD のみ受け付ける
//   - 静的ディレクトリが無い場合はソケットを開かない
//   - グレースフルシャットダウンに対応
package server
