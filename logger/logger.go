// Package logger wires go-logging backends for the zkgroup tools.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/op/go-logging.v1"
)

const (
	fmtString = `%{color}%{time:15:04:05.000} %{module}/%{shortfunc} ▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`
)

// Logger holds the leveled backend shared by every module logger.
type Logger struct {
	backend logging.LeveledBackend
	level   logging.Level
}

func logLevelFromString(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "CRITICAL":
		return logging.CRITICAL, nil
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.ERROR, logging.ErrInvalidLogLevel
	}
}

// GetLogger returns a per-module logger that writes to the backend.
func (l *Logger) GetLogger(module string) *logging.Logger {
	log := logging.MustGetLogger(module)
	l.backend.SetLevel(l.level, module)
	log.SetBackend(l.backend)
	return log
}

// New returns a logger writing to f, or stdout when f is empty.
func New(f string, level string, disable bool) (*Logger, error) {
	logFmt := logging.MustStringFormatter(fmtString)

	lvl, err := logLevelFromString(level)
	if err != nil {
		return nil, err
	}

	var logOut io.Writer
	switch {
	case disable:
		logOut = io.Discard
	case f == "":
		logOut = os.Stdout
	default:
		const fileMode = 0600
		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		logOut, err = os.OpenFile(f, flags, fileMode)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("logger: open %s", f))
		}
	}

	base := logging.NewLogBackend(logOut, "", 0)
	formatted := logging.NewBackendFormatter(base, logFmt)
	backend := logging.AddModuleLevel(formatted)
	backend.SetLevel(lvl, "")

	return &Logger{
		backend: backend,
		level:   lvl,
	}, nil
}
