package utils

import (
	"fmt"
	"os"
)

// Debug tracing, enabled by setting KMACX_DEBUG. Never pass secrets.
var debugEnabled = os.Getenv("KMACX_DEBUG") != ""

// Debugf writes a trace line to stderr when KMACX_DEBUG is set.
func Debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "[kmacx] "+format+"\n", args...)
	}
}
