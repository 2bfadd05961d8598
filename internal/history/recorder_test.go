package history_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cleanfolder/internal/history"
	"github.com/vmunix/cleanfolder/internal/organizer"
)

func TestRecorder_RecordsRun(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "a.txt"), []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.zip"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tool.exe"), []byte("x"), 0o644))

	rec, err := history.NewRecorder(store, root, organizer.CollisionRename, log)
	require.NoError(t, err)

	res, runErr := organizer.New(organizer.Config{}, rec, log).Run(context.Background(), root)
	require.NoError(t, runErr)
	require.NoError(t, rec.Finish(res, runErr))

	run, err := store.GetRun(rec.Run().ID)
	require.NoError(t, err)
	assert.Equal(t, history.StatusCompleted, run.Status)
	assert.Equal(t, 2, run.Moved)
	assert.Equal(t, 1, run.UnpackFailed)
	// sub and the archives folder left by the failed unpack
	assert.Equal(t, 2, run.Pruned)
	assert.Equal(t, int64(4), run.BytesMoved)
	assert.Equal(t, []string{"EXE"}, run.UnknownExtensions)

	actions, err := store.Actions(run.ID)
	require.NoError(t, err)
	require.Len(t, actions, len(res.Actions))
	for i, a := range res.Actions {
		assert.Equal(t, string(a.Kind), actions[i].Kind)
		assert.Equal(t, a.Source, actions[i].Source)
	}
}

func TestRecorder_SkipsDryRunActions(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rec, err := history.NewRecorder(store, "/data", organizer.CollisionRename, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec.OnAction(organizer.Action{Kind: organizer.ActionMoved, Source: "/data/a.txt", DryRun: true})

	actions, err := store.Actions(rec.Run().ID)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestRecorder_FinishFailed(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rec, err := history.NewRecorder(store, "/data", organizer.CollisionFail, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, rec.Finish(nil, errors.New("scan: permission denied")))

	run, err := store.GetRun(rec.Run().ID)
	require.NoError(t, err)
	assert.Equal(t, history.StatusFailed, run.Status)
	assert.Equal(t, "fail", run.Collision)
	assert.Equal(t, "scan: permission denied", run.Error)
}
