// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures logrus and hands out request-scoped entries.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// RequestIDKey is the context key holding the request id.
const RequestIDKey ctxKey = "requestId"

// SlowThreshold is the duration above which Track logs at warn level.
var SlowThreshold = 2 * time.Second

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

// Setup sets the global level and output. An unknown level falls back to info.
func Setup(level string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	if out != nil {
		logrus.SetOutput(out)
	}
}

// For returns an entry carrying the request id from ctx, if any.
func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("request_id", id)
}

// ContextWithID returns a copy of ctx carrying the request id.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Track logs msg with its duration when the returned func is called.
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())
		if dur > SlowThreshold {
			entry.Warnf("%s completed (slow)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
