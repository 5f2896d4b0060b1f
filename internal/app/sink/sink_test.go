package sink_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/app/sink"
	"github.com/issafronov/leadredirect/internal/testutils"
)

func testEvent(lead string) models.ClickEvent {
	ua := "TestAgent/1.0"
	return models.ClickEvent{
		Event:     models.ClickEventKind,
		Lead:      lead,
		Timestamp: "2026-10-19T11:03:07.250Z",
		IP:        "unknown",
		UA:        &ua,
	}
}

func TestLogSink_Record(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewLogSink(zapcore.AddSync(&buf))

	require.NoError(t, s.Record(context.Background(), testEvent("law")))

	assert.JSONEq(t,
		`{"event":"click","lead":"law","timestamp":"2026-10-19T11:03:07.250Z","ip":"unknown","ua":"TestAgent/1.0"}`,
		buf.String(),
	)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestLogSink_NullUserAgent(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewLogSink(zapcore.AddSync(&buf))

	event := testEvent("valley")
	event.UA = nil
	require.NoError(t, s.Record(context.Background(), event))

	assert.JSONEq(t,
		`{"event":"click","lead":"valley","timestamp":"2026-10-19T11:03:07.250Z","ip":"unknown","ua":null}`,
		buf.String(),
	)
}

func TestMultiSink(t *testing.T) {
	first := &testutils.RecordingSink{}
	second := &testutils.RecordingSink{Err: errors.New("second failed")}
	third := &testutils.RecordingSink{Err: errors.New("third failed")}

	err := sink.MultiSink{first, second, third}.Record(context.Background(), testEvent("tampa"))

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
	assert.Len(t, third.Events(), 1)
}

type downSink struct{ testutils.RecordingSink }

func (*downSink) Ping(context.Context) error { return errors.New("down") }

func TestMultiSink_Ping(t *testing.T) {
	ctx := context.Background()
	counting := sink.NewCountingSink()

	assert.ErrorIs(t, sink.Ping(ctx, counting), sink.ErrNoPinger)
	assert.NoError(t, sink.MultiSink{counting, sink.NewAsyncSink(counting, 1, 0)}.Ping(ctx))
	assert.EqualError(t, sink.MultiSink{counting, &downSink{}}.Ping(ctx), "down")
}

func TestCountingSink(t *testing.T) {
	ctx := context.Background()
	s := sink.NewCountingSink()

	for _, lead := range []string{"valley", "law", "valley", "duffy", "valley"} {
		require.NoError(t, s.Record(ctx, testEvent(lead)))
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.LeadStats{
		{Lead: "duffy", Clicks: 1},
		{Lead: "law", Clicks: 1},
		{Lead: "valley", Clicks: 3},
	}, stats)
}
