package cart

import (
	"context"
	"database/sql"
)

// DBExecutor минимальный набор методов *sql.DB, который нужен репозиторию
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store key/value хранилище состояния клиента (корзина, последний заказ).
// Значение это JSON документ, ключ имеет вид "<booking_cart|last_booking_order>:<session>".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
