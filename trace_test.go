package xdi2

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestLogHandleNilIsInert(t *testing.T) {
	var h *logHandle
	h.debug(context.Background(), "should not panic")
	h.info(context.Background(), "should not panic")
	h.warn(context.Background(), "should not panic")
	h.error(context.Background(), "should not panic")

	empty := NewLogHandle(nil)
	empty.warn(context.Background(), "also inert")
}

func TestLogHandleWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	h := NewLogHandle(logger)

	h.debug(context.Background(), "below threshold")
	if buf.Len() != 0 {
		t.Fatal("debug below the configured level should not be written")
	}

	h.warn(context.Background(), "dispatch warning", slog.String("k", "v"))
	if !bytes.Contains(buf.Bytes(), []byte("dispatch warning")) {
		t.Error("expected the warn message to appear in the log output")
	}
}
