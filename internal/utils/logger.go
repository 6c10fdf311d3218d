package utils

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	logMu  sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// InitLogger builds the process logger. mode "prod"/"production" gives JSON
// output at info level; anything else is the development console config.
func InitLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	SetLogger(z.Sugar())
	return L(), nil
}

// SetLogger swaps the process logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func L() *zap.SugaredLogger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// SyncLogger flushes buffered entries; call before exit.
func SyncLogger() {
	_ = L().Sync()
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string, keysAndValues ...any) {
	kv := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	}, redact(keysAndValues)...)
	L().Infow(message, kv...)
}

// LogFailure is LogEvent at error level.
func LogFailure(requestID, module, action string, err error, keysAndValues ...any) {
	kv := append([]any{
		"module", strings.ToLower(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
		"error", err,
	}, redact(keysAndValues)...)
	L().Errorw(action+" failed", kv...)
}

func redact(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key, _ := kv[i].(string)
		switch strings.ToLower(key) {
		case "authorization", "api_key", "apikey", "token":
			out = append(out, kv[i], "[REDACTED]")
		default:
			out = append(out, kv[i], kv[i+1])
		}
	}
	return out
}
