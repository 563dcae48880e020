// Package logging configures the process logger and carries per-request
// log entries through contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"

	"socialfeed/internal/config"
)

const serviceName = "socialfeed"

// New builds a JSON logger writing to out. When LogstashAddr is set, entries
// are also shipped over TCP; the returned closer releases that connection.
func New(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	if cfg.LogstashAddr == "" {
		return logger, nopCloser{}, nil
	}

	conn, err := net.DialTimeout("tcp", cfg.LogstashAddr, 5*time.Second)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to logstash %s: %w", cfg.LogstashAddr, err)
	}
	logger.AddHook(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": serviceName})))
	return logger, conn, nil
}

// Stdout is New writing to standard output.
func Stdout(cfg config.LoggingConfig) (*logrus.Logger, io.Closer, error) {
	return New(cfg, os.Stdout)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey struct{}

// WithEntry stores a request-scoped entry in ctx.
func WithEntry(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the request-scoped entry, or one built on fallback.
func FromContext(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return fallback
}
