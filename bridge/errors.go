package bridge

import "errors"

// ErrUnknownID is returned for ids the registry never issued or has freed.
var ErrUnknownID = errors.New("bridge: unknown id")

// ErrQuotaExceeded is returned when MaxDocuments or MaxHandles is reached.
var ErrQuotaExceeded = errors.New("bridge: quota exceeded")
