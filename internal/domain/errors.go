package domain

import "errors"

// Ошибки конвейера конвертации. Все они локальны для одного вызова:
// при любой из них вызывающий получает ноль артефактов.
var (
	ErrDecode            = errors.New("decode failure")
	ErrEncode            = errors.New("encode failure")
	ErrEmptyInput        = errors.New("nothing to convert")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
