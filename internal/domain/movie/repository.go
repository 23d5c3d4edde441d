package movie

import "context"

// Repository は映画カタログのインターフェース。カタログは読み取り専用で、
// List は登録順を維持する。
type Repository interface {
	// List は全映画を登録順で取得する
	List(ctx context.Context) ([]*Movie, error)

	// GetByID はIDから映画を取得する
	GetByID(ctx context.Context, id string) (*Movie, error)
}
