// Package migrations は goose 用の SQL マイグレーションを埋め込む
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
