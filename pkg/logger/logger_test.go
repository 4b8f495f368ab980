package logger_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
			return slog.String(logger.RequestIDKey, v), true
		}
		return slog.Attr{}, false
	}
}

func TestConsoleLine(t *testing.T) {
	t.Parallel()

	t.Run("formats timestamp, request id and level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithConsole(&buf), logger.WithExtractors(requestIDExtractor()))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
		log.InfoContext(ctx, "request completed", slog.Int("status", 200))

		line := buf.String()
		require.Contains(t, line, "[req-42]")
		require.Contains(t, line, "[INFO]")
		require.Contains(t, line, "request completed")
		require.Contains(t, line, "status=200")
		// Level tag is color-coded on the console.
		require.Contains(t, line, "\x1b[32m[INFO]\x1b[0m")
	})

	t.Run("renders dash when no request id in context", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithConsole(&buf), logger.WithExtractors(requestIDExtractor()))

		log.Info("server starting")
		require.Contains(t, buf.String(), "[-] ")
	})

	t.Run("respects minimum level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithConsole(&buf), logger.WithLevel(slog.LevelWarn))

		log.Info("dropped")
		log.Warn("kept")

		require.NotContains(t, buf.String(), "dropped")
		require.Contains(t, buf.String(), "kept")
	})
}

func TestFileLogging(t *testing.T) {
	t.Parallel()

	t.Run("splits stdout and stderr daily files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		log := logger.New(logger.WithConsole(io.Discard), logger.WithDirectory(dir))

		log.Info("all good")
		log.Error("it broke")

		day := time.Now().Format("2006-01-02")

		out, err := os.ReadFile(filepath.Join(dir, "stdout-"+day+".log"))
		require.NoError(t, err)
		require.Contains(t, string(out), "[INFO] all good")
		require.NotContains(t, string(out), "it broke")

		errFile, err := os.ReadFile(filepath.Join(dir, "stderr-"+day+".log"))
		require.NoError(t, err)
		require.Contains(t, string(errFile), "[ERROR] it broke")
	})

	t.Run("file lines carry no ANSI codes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		log := logger.New(logger.WithConsole(io.Discard), logger.WithDirectory(dir))

		log.Info("plain line")

		day := time.Now().Format("2006-01-02")
		out, err := os.ReadFile(filepath.Join(dir, "stdout-"+day+".log"))
		require.NoError(t, err)
		require.NotContains(t, string(out), "\x1b[")
	})

	t.Run("line matches documented format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		log := logger.New(
			logger.WithConsole(io.Discard),
			logger.WithDirectory(dir),
			logger.WithExtractors(requestIDExtractor()),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc123")
		log.InfoContext(ctx, "hello")

		day := time.Now().Format("2006-01-02")
		out, err := os.ReadFile(filepath.Join(dir, "stdout-"+day+".log"))
		require.NoError(t, err)

		line := strings.TrimRight(string(out), "\n")
		// <timestamp> [<requestId>] [<LEVEL>] <message>
		re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} \[abc123\] \[INFO\] hello$`)
		require.Regexp(t, re, line)
	})

	t.Run("with attrs carried into every entry", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		log := logger.New(logger.WithConsole(io.Discard), logger.WithDirectory(dir)).With("app", "authapi")

		log.Info("boot")

		day := time.Now().Format("2006-01-02")
		out, err := os.ReadFile(filepath.Join(dir, "stdout-"+day+".log"))
		require.NoError(t, err)
		require.Contains(t, string(out), "app=authapi")
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Info("discarded") // must not panic
}
