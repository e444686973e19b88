package sync

import "errors"

// Ошибки оркестратора синхронизации
var (
	// ErrNetworkUnavailable возвращается из SyncNow при отсутствии сети
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrAlreadyStarted возвращается при повторном запуске драйвера
	ErrAlreadyStarted = errors.New("sync driver already started")
	// ErrNotStarted возвращается при остановке незапущенного драйвера
	ErrNotStarted = errors.New("sync driver not started")
)
