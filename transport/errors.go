package transport

import "errors"

// 错误定义
var (
	ErrSingularInterface   = errors.New("transport: singular interface current matrix")
	ErrSingularBoundary    = errors.New("transport: singular boundary system")
	ErrZeroIncidentCurrent = errors.New("transport: zero incident current")
	ErrEmptyStack          = errors.New("transport: stack has no layers")
	ErrBlockSize           = errors.New("transport: invalid mode block size")
)
