package error_notificator

import "context"

type Notificator interface {
	// Notify: сообщает о внутренней ошибке (не об ошибке пользовательского файла)
	Notify(ctx context.Context, source string, err error, details string) error
}
