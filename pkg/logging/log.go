// Package logging configures the process-wide apex/log setup.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envLevel = "MOVEDIFF_LOG"
	envFile  = "MOVEDIFF_LOG_FILE"

	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Init installs the handler and reads the log level from MOVEDIFF_LOG
// (debug/info/warn/error/fatal, default error). When MOVEDIFF_LOG_FILE is
// set, output goes to a size-rotated file instead of stderr.
func Init() {
	var out io.Writer = os.Stderr
	if path := os.Getenv(envFile); path != "" {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
		}
	}

	log.SetHandler(&handler{out: out})
	log.SetLevel(parseLevel(os.Getenv(envLevel)))
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	case "error", "":
		return log.ErrorLevel
	default:
		return log.ErrorLevel
	}
}

// handler writes compact single-line entries.
type handler struct {
	mu  sync.Mutex
	out io.Writer
}

func (h *handler) HandleLog(e *log.Entry) error {
	var b strings.Builder

	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(" [")
	b.WriteString(levelLetter(e.Level))
	b.WriteString("] ")
	b.WriteString(e.Message)

	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	default:
		return "?"
	}
}
