// Package logging builds the application's logrus logger and the HTTP access-log
// middleware that feeds chi's request logging into it.
package logging

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/user/blog-go/config"
)

// New returns a logger configured from cfg. Unknown levels fall back to info.
func New(cfg *config.LogConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(cfg *config.LogConfig, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// RequestLogger returns chi middleware that writes one structured line per request.
// It replaces `middleware.Logger`, which only knows how to print to the std logger.
func RequestLogger(l logrus.FieldLogger) func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&formatter{logger: l})
}

type formatter struct {
	logger logrus.FieldLogger
}

func (f *formatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	fields := logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote":     r.RemoteAddr,
		"user_agent": r.UserAgent(),
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		fields["request_id"] = reqID
	}
	return &entry{logger: f.logger.WithFields(fields)}
}

type entry struct {
	logger logrus.FieldLogger
}

func (e *entry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	l := e.logger.WithFields(logrus.Fields{
		"status":     status,
		"bytes":      bytes,
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000.0,
	})
	switch {
	case status >= 500:
		l.Error("request completed")
	case status >= 400:
		l.Warn("request completed")
	default:
		l.Info("request completed")
	}
}

func (e *entry) Panic(v interface{}, stack []byte) {
	e.logger.WithFields(logrus.Fields{
		"panic": v,
		"stack": string(stack),
	}).Error("request panicked")
}
