package atlas

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// Logger 返回包级日志记录器，调用 SetLogger 之前不输出任何日志。
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

// SetLogger 设置包级日志记录器，传入 nil 时恢复为空记录器。可并发调用。
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}
