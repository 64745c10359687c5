package cafeapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics учет исходящих запросов к бэкенду
type Metrics interface {
	ObserveUpstream(endpoint, status string, started time.Time)
}
