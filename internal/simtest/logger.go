package simtest

import (
	"io"

	"github.com/charmbracelet/log"
)

// QuietLogger discards everything below error level
func QuietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
