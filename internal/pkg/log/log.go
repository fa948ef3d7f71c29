package log

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Setup builds the process-wide logger. Production encoder, stdout only;
// log shipping is the platform's job.
func Setup() *otelzap.Logger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return otelzap.New(zapLogger, otelzap.WithMinLevel(zap.InfoLevel))
}
