package arrange

import "go.uber.org/zap"

var logSink = zap.NewNop().Sugar()

// SetLogger injects the logger used by this package. Passing nil resets
// to a no-op logger.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		logSink = zap.NewNop().Sugar()
		return
	}
	logSink = l
}
