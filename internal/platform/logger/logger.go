// Package logger owns the process zerolog logger, configured from LOG_* env,
// and the request-scoped children handlers log through
package logger

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is zerolog's logger
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string // trace through panic, anything else is debug
	Format  string // console or json
	Service string
	Caller  bool
	Writer  io.Writer // stdout when nil
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER. The config
// package logs through this one, so these are read straight from the env.
func FromEnv() Options {
	env := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	caller, _ := strconv.ParseBool(env("CALLER", "false"))
	return Options{
		Level:   env("LEVEL", "debug"),
		Format:  strings.ToLower(env("FORMAT", "console")),
		Service: env("SERVICE", "spoofwatch"),
		Caller:  caller,
	}
}

var (
	once sync.Once
	root *Logger
)

// Init builds the root logger. Only the first Init or Get counts.
func Init(opt Options) {
	once.Do(func() {
		l := build(opt)
		root = &l
	})
}

// Get is the root logger, built from FromEnv unless Init ran first
func Get() *Logger {
	once.Do(func() {
		l := build(FromEnv())
		root = &l
	})
	return root
}

func build(opt Options) Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel || l == zerolog.Disabled {
		return zerolog.DebugLevel
	}
	return l
}

// Named is a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type requestKey struct{}

type requestFields struct{ requestID, clientID string }

// WithRequest records the ids C stamps on its logger. An empty id keeps the
// one ctx already carries.
func WithRequest(ctx context.Context, reqID, clientID string) context.Context {
	f, _ := ctx.Value(requestKey{}).(requestFields)
	if reqID != "" {
		f.requestID = reqID
	}
	if clientID != "" {
		f.clientID = clientID
	}
	return context.WithValue(ctx, requestKey{}, f)
}

// C is the root logger carrying ctx's request and client ids
func C(ctx context.Context) *Logger { return scoped(Get(), ctx) }

func scoped(base *Logger, ctx context.Context) *Logger {
	f, ok := ctx.Value(requestKey{}).(requestFields)
	if !ok {
		return base
	}
	b := base.With()
	if f.requestID != "" {
		b = b.Str("request_id", f.requestID)
	}
	if f.clientID != "" {
		b = b.Str("client_id", f.clientID)
	}
	l := b.Logger()
	return &l
}
