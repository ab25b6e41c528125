package logging

// Discard is a logger that drops all messages. It is the default for a
// Settings instance constructed without an explicit logger.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Errorf(format string, args ...any) {}
func (discardLogger) Warnf(format string, args ...any)  {}
func (discardLogger) Infof(format string, args ...any)  {}
func (discardLogger) Debugf(format string, args ...any) {}
