package evaluation

import "errors"

// Ошибки движка оценки
var (
	// ErrNilSnapshot передан пустой снапшот
	ErrNilSnapshot = errors.New("снапшот тендера не передан")

	// ErrTenderNotReady тендер еще не дошел до стадии оценки:
	// считать победителей по идущему приему предложений нельзя
	ErrTenderNotReady = errors.New("тендер не готов к оценке")
)
