package sink_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issafronov/leadredirect/internal/app/models"
	"github.com/issafronov/leadredirect/internal/app/sink"
)

func readLines(t *testing.T, path string) []models.ClickEvent {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var events []models.ClickEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event models.ClickEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestFileSink_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicks.jsonl")

	s, err := sink.NewFileSink(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, testEvent("valley")))
	require.NoError(t, s.Record(ctx, testEvent("law")))
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())

	events := readLines(t, path)
	require.Len(t, events, 2)
	assert.Equal(t, "valley", events[0].Lead)
	assert.Equal(t, "law", events[1].Lead)
	require.NotNil(t, events[1].UA)
	assert.Equal(t, "TestAgent/1.0", *events[1].UA)
}

func TestFileSink_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicks.jsonl")

	for i := 0; i < 2; i++ {
		s, err := sink.NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, s.Record(context.Background(), testEvent("poggi")))
		require.NoError(t, s.Close())
	}

	assert.Len(t, readLines(t, path), 2)
}

func TestFileSink_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clicks.jsonl")

	s, err := sink.NewFileSink(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Record(context.Background(), testEvent("wigod")))
		}()
	}
	wg.Wait()
	require.NoError(t, s.Close())

	assert.Len(t, readLines(t, path), 50)
}

func TestNewFileSink_BadPath(t *testing.T) {
	_, err := sink.NewFileSink(filepath.Join(t.TempDir(), "missing", "clicks.jsonl"))
	assert.Error(t, err)
}
