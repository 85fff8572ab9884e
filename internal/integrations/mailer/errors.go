package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма
	// Вызывающая сторона обязана логировать и глотать эту ошибку:
	// неудачная отправка уведомления не откатывает бронирование
	ErrSendFailed = errors.New("mailer: failed to send message")
)
