package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"catalog/config"
	ctxutil "catalog/internal/delivery/context"
	"catalog/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturingLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func sqlFn() (string, int64) {
	return `SELECT * FROM "users"`, 3
}

func TestGormSlogLogger_Trace(t *testing.T) {
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		debug   bool
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "failed query", elapsed: time.Millisecond, err: errors.New("syntax error"), want: "GORM query failed"},
		{name: "record not found is quiet", elapsed: time.Millisecond, err: gorm.ErrRecordNotFound, want: ""},
		{name: "slow query", elapsed: time.Second, want: "GORM slow query"},
		{name: "fast query hidden at warn", elapsed: time.Millisecond, want: ""},
		{name: "fast query shown in debug", debug: true, elapsed: time.Millisecond, want: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, buf := newCapturingLogger()
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			l := newGormSlogLogger(base, cfg).(*gormSlogLogger)
			l.now = func() time.Time { return begin.Add(tt.elapsed) }

			l.Trace(context.Background(), begin, sqlFn, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "rows=3")
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	base, baseBuf := newCapturingLogger()
	requestLogger, requestBuf := newCapturingLogger()
	ctx := ctxutil.WithLogger(context.Background(), requestLogger.With(slog.String("request_id", "req-1")))

	l := newGormSlogLogger(base, &config.Config{})
	l.Warn(ctx, "deprecated %s", "call")

	assert.Empty(t, baseBuf.String())
	assert.True(t, strings.Contains(requestBuf.String(), "request_id=req-1"))
	assert.Contains(t, requestBuf.String(), "deprecated call")
}

func TestGormSlogLogger_LogModeSilent(t *testing.T) {
	base, buf := newCapturingLogger()

	l := newGormSlogLogger(base, &config.Config{}).LogMode(logger.Silent)
	l.Trace(context.Background(), time.Now().Add(-time.Hour), sqlFn, errors.New("boom"))

	assert.Empty(t, buf.String())
}
