package logging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unstartedHandler buffers records without a flush loop or database.
func unstartedHandler() *PGHandler {
	return &PGHandler{sink: &pgSink{buffer: make([]models.SystemLog, 0, batchSize)}}
}

func TestPGHandlerEnabled(t *testing.T) {
	h := unstartedHandler()
	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPGHandlerMapsStoreAttributes(t *testing.T) {
	h := unstartedHandler()
	logger := slog.New(h).With("service", "storefront")
	ctx := WithRequestID(context.Background(), "req-1")

	logger.ErrorContext(ctx, "storage operation failed",
		"entity", "User",
		"op", "delete",
		"entity_id", int64(7),
		"code", "57P01",
		"error", "terminating connection",
		"kind", "unknown",
	)

	require.Len(t, h.sink.buffer, 1)
	entry := h.sink.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "storage operation failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "User", entry.Entity)
	assert.Equal(t, "delete", entry.Op)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, int64(7), *entry.EntityID)
	assert.Equal(t, "57P01", entry.Code)
	assert.Equal(t, "terminating connection", entry.Error)
	assert.WithinDuration(t, time.Now(), entry.Timestamp, time.Minute)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "unknown", extra["kind"])
	assert.Equal(t, "storefront", extra["service"])
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	pg := unstartedHandler()
	var captured []string
	rec := recordingHandler{seen: &captured}

	logger := slog.New(NewMultiHandler(rec, pg))
	logger.Info("started")
	logger.Error("boom")

	assert.Equal(t, []string{"started", "boom"}, captured)
	require.Len(t, pg.sink.buffer, 1)
	assert.Equal(t, "boom", pg.sink.buffer[0].Message)
}

func TestRequestIDFrom(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
	assert.Equal(t, "abc", RequestIDFrom(WithRequestID(context.Background(), "abc")))
}

type recordingHandler struct {
	seen *[]string
}

func (r recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (r recordingHandler) Handle(_ context.Context, rec slog.Record) error {
	*r.seen = append(*r.seen, rec.Message)
	return nil
}

func (r recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r recordingHandler) WithGroup(string) slog.Handler      { return r }

type failingHandler struct{ recordingHandler }

func (f failingHandler) Handle(ctx context.Context, rec slog.Record) error {
	_ = f.recordingHandler.Handle(ctx, rec)
	return errors.New("sink down")
}

func TestMultiHandlerKeepsGoingAfterFailure(t *testing.T) {
	var first, second []string
	h := NewMultiHandler(failingHandler{recordingHandler{seen: &first}}, recordingHandler{seen: &second})

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0))
	assert.EqualError(t, err, "sink down")
	assert.Equal(t, []string{"hello"}, first)
	assert.Equal(t, []string{"hello"}, second)
}
