package history

import (
	"log/slog"

	"github.com/vmunix/cleanfolder/internal/organizer"
	"github.com/vmunix/cleanfolder/internal/scan"
)

// Recorder writes a run and its actions to a Store as the organizer reports
// them. Write errors are logged, never returned to the organizer: a broken
// history database must not stop files from being sorted.
type Recorder struct {
	store *Store
	run   *Run
	log   *slog.Logger
}

// NewRecorder starts a run record for root.
func NewRecorder(store *Store, root string, collision organizer.Collision, log *slog.Logger) (*Recorder, error) {
	run, err := store.BeginRun(root, string(collision))
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, run: run, log: log.With("component", "history", "run_id", run.ID)}, nil
}

// Run returns the run being recorded.
func (r *Recorder) Run() *Run {
	return r.run
}

func (r *Recorder) OnScan(res *scan.Result) {
	r.run.UnknownExtensions = res.UnknownExtensions()
}

// OnAction stores a, unless it was only planned.
func (r *Recorder) OnAction(a organizer.Action) {
	if a.DryRun {
		return
	}
	rec := &Action{
		RunID:    r.run.ID,
		Kind:     string(a.Kind),
		Category: string(a.Category),
		Source:   a.Source,
		Dest:     a.Dest,
		Size:     a.Size,
	}
	if a.Err != nil {
		rec.Error = a.Err.Error()
	}
	if err := r.store.AddAction(rec); err != nil {
		r.log.Warn("record action failed", "kind", a.Kind, "source", a.Source, "error", err)
	}
}

// Finish stores the outcome of the run. res may be nil when the run failed
// before scanning.
func (r *Recorder) Finish(res *organizer.Result, runErr error) error {
	r.run.Status = StatusCompleted
	if runErr != nil {
		r.run.Status = StatusFailed
		r.run.Error = runErr.Error()
	}
	if res != nil {
		r.run.Moved = res.Count(organizer.ActionMoved)
		r.run.Unpacked = res.Count(organizer.ActionUnpacked)
		r.run.UnpackFailed = res.Count(organizer.ActionUnpackFailed)
		r.run.Pruned = res.Count(organizer.ActionPruned)
		r.run.BytesMoved = res.BytesMoved
	}
	return r.store.FinishRun(r.run)
}
