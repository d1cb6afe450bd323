package pow

import "errors"

var (
	ErrInvalidVariant       = errors.New("invalid variant")
	ErrUnimplementedBackend = errors.New("unimplemented backend")
	ErrSelfTestFailure      = errors.New("self-test failure")
	ErrNotInitialized       = errors.New("backend not initialized")
	ErrUnknownAlgorithm     = errors.New("unknown algorithm")
)
