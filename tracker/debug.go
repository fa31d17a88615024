package tracker

import (
	"io"
	"log"
)

var debugLogger *log.Logger

// SetDebugLogger installs a logger that receives per-track filter diagnostics.
// Pass nil to disable debug logging.
func SetDebugLogger(w io.Writer) {
	if w == nil {
		debugLogger = nil
		return
	}
	debugLogger = log.New(w, "tracker: ", log.LstdFlags|log.Lmicroseconds)
}

func debugf(format string, args ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, args...)
	}
}
