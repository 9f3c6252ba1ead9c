package get_closed_days

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}
