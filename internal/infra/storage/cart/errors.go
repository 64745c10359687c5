package cart

import "errors"

var (
	// ErrNotFound возвращается, когда по ключу ничего не сохранено
	ErrNotFound = errors.New("cart.storage: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cart.storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("cart.storage: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cart.storage: failed to scan row")
)
