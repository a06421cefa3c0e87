package watchers

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"outlog/internal/events"
	streammocks "outlog/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewWatcher_InvalidGlob(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w, err := NewWatcher(t.TempDir(), Options{Glob: "["}, streammocks.NewMockCompactionProducer(ctrl))
	assert.ErrorIs(t, err, ErrInvalidGlob)
	assert.Nil(t, w)
}

func TestNewWatcher_SkipsOutputDir(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "run_1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "concise_logs"), 0o755))

	w, err := NewWatcher(root, Options{Glob: "**/*.log", OutputDir: "concise_logs"}, streammocks.NewMockCompactionProducer(ctrl))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root, filepath.Join(root, "run_1")}, w.Dirs())
}

func TestWatcher_Match(t *testing.T) {
	t.Parallel()

	w := &watcher{root: "/logs", opts: Options{Glob: "**/*.log", OutputDir: "concise_logs"}}

	tests := []struct {
		name    string
		path    string
		wantRel string
		wantOK  bool
	}{
		{name: "top level log", path: "/logs/a.log", wantRel: "a.log", wantOK: true},
		{name: "nested log", path: "/logs/run_1/a.log", wantRel: "run_1/a.log", wantOK: true},
		{name: "other extension", path: "/logs/a.txt", wantOK: false},
		{name: "filtered output", path: "/logs/concise_logs/a.filtered.log", wantOK: false},
		{name: "outside root", path: "/tmp/a.log", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, ok := w.match(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRel, rel)
			}
		})
	}
}

func TestWatcher_Flush_DebouncesAndOrders(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockCompactionProducer(ctrl)
	now := time.Now()
	w := &watcher{
		producer: producer,
		pending: map[string]pendingEvent{
			"b.log": {op: events.OpWrite, due: now.Add(-time.Millisecond)},
			"a.log": {op: events.OpCreate, due: now},
			"c.log": {op: events.OpWrite, due: now.Add(time.Hour)},
		},
	}

	gomock.InOrder(
		producer.EXPECT().Produce(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev *events.CompactionRequestedEvent) error {
				assert.Equal(t, "a.log", ev.SourceName)
				assert.Equal(t, events.OpCreate, ev.Op)
				return nil
			}),
		producer.EXPECT().Produce(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev *events.CompactionRequestedEvent) error {
				assert.Equal(t, "b.log", ev.SourceName)
				return nil
			}),
	)

	require.NoError(t, w.flush(context.Background(), now))
	assert.Len(t, w.pending, 1)
	assert.Contains(t, w.pending, "c.log")
}

func TestWatcher_Drain_QueuesChangesStillInQuietPeriod(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := streammocks.NewMockCompactionProducer(ctrl)
	later := time.Now().Add(time.Hour)
	w := &watcher{
		producer: producer,
		pending: map[string]pendingEvent{
			"run_2.log": {op: events.OpWrite, due: later},
			"run_1.log": {op: events.OpCreate, due: later},
		},
	}

	var queued []string
	producer.EXPECT().Produce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev *events.CompactionRequestedEvent) error {
			require.NoError(t, ctx.Err(), "draining publishes after shutdown started")
			queued = append(queued, ev.SourceName)
			return nil
		}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.drain(ctx))

	assert.Equal(t, []string{"run_1.log", "run_2.log"}, queued)
	assert.Empty(t, w.pending)
}

func TestWatcher_Run_QueuesChangedOutlogs(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "concise_logs"), 0o755))

	producer := streammocks.NewMockCompactionProducer(ctrl)
	queued := make(chan string, 8)
	producer.EXPECT().Produce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev *events.CompactionRequestedEvent) error {
			queued <- ev.SourceName
			return nil
		}).MinTimes(1)

	w, err := NewWatcher(root, Options{Glob: "*.log", OutputDir: "concise_logs", Debounce: 20 * time.Millisecond}, producer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "concise_logs", "run.filtered.log"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "run.log"), []byte("x\n"), 0o644))

	select {
	case name := <-queued:
		assert.Equal(t, "run.log", name)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "outlog change was not queued")
	}

	cancel()
	assert.NoError(t, <-done)
}
