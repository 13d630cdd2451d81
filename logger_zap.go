package auth

import "go.uber.org/zap"

type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to Logger. A nil logger yields a no-op.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return zapLogger{s: l.Named("auth").Sugar()}
}

func (z zapLogger) Debug(format string, args ...any) {
	z.s.Debugf(format, args...)
}

func (z zapLogger) Info(format string, args ...any) {
	z.s.Infof(format, args...)
}

func (z zapLogger) Error(format string, args ...any) {
	z.s.Errorf(format, args...)
}
