// Package organizer sorts the files of a directory tree into category
// folders, unpacks archives and removes the folders left empty.
package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vmunix/cleanfolder/internal/category"
	"github.com/vmunix/cleanfolder/internal/scan"
)

// Collision decides what happens when the normalized name is already taken
// in the category folder.
type Collision string

const (
	// CollisionRename picks the first free name_1, name_2, ... variant.
	CollisionRename Collision = "rename"
	// CollisionOverwrite replaces the existing file.
	CollisionOverwrite Collision = "overwrite"
	// CollisionFail aborts the run with ErrDestinationExists.
	CollisionFail Collision = "fail"
)

// ParseCollision converts a config or flag value. Empty means CollisionRename.
func ParseCollision(s string) (Collision, error) {
	switch c := Collision(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CollisionRename, nil
	case CollisionRename, CollisionOverwrite, CollisionFail:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (want rename, overwrite or fail)", ErrInvalidCollision, s)
	}
}

// Config for the organizer. The zero value is the default behaviour.
type Config struct {
	Collision  Collision
	DryRun     bool
	SkipUnpack bool // move archives like any other file
	SkipPrune  bool
}

// ActionKind names a filesystem change.
type ActionKind string

const (
	ActionMoved        ActionKind = "moved"
	ActionUnpacked     ActionKind = "unpacked"
	ActionUnpackFailed ActionKind = "unpack_failed"
	ActionPruned       ActionKind = "pruned"
)

// Action is one change made (or, with DryRun, planned) during a run.
type Action struct {
	Kind     ActionKind
	Category category.Category // empty for ActionPruned
	Source   string
	Dest     string // category file, extraction folder, or empty
	Size     int64
	DryRun   bool
	Err      error // why an unpack failed
}

// Result summarizes a run. On a fatal error Run still returns the Result
// with everything done up to that point.
type Result struct {
	Root   string
	DryRun bool
	Scan   *scan.Result

	Actions []Action

	// Processed lists the final names per category: file names for moved
	// files, extraction folder names for unpacked archives.
	Processed map[category.Category][]string

	// Errors are non-fatal problems, currently only *CleanupError.
	Errors []error

	BytesMoved int64

	// Suggestions maps an unknown extension to a similar known one.
	Suggestions map[string]string
}

// Count returns the number of actions of the given kind.
func (r *Result) Count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Organizer runs the scan, relocate, unpack and prune phases.
// It is not safe to run two passes over the same root concurrently.
type Organizer struct {
	cfg      Config
	observer Observer
	log      *slog.Logger
}

// New creates an organizer. observer may be nil.
func New(cfg Config, observer Observer, log *slog.Logger) *Organizer {
	if cfg.Collision == "" {
		cfg.Collision = CollisionRename
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Organizer{cfg: cfg, observer: observer, log: log}
}

// Run organizes root in three phases:
//
//  1. scan: classify every file (read-only)
//  2. relocate: in category order, unpack archives and move everything else
//     into root/<category>
//  3. prune: remove directories left empty
//
// Filesystem errors other than a failed unpack abort the run; nothing is
// rolled back. ctx is checked between files.
func (o *Organizer) Run(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	o.log.Info("run started", "root", abs, "dry_run", o.cfg.DryRun, "collision", o.cfg.Collision)

	snap, err := scan.Scan(abs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	o.log.Debug("scan complete", "files", snap.Files(), "folders", len(snap.Folders), "unknown", snap.UnknownExtensions())
	o.observer.OnScan(snap)

	p := &pass{
		Organizer: o,
		root:      abs,
		reserved:  make(map[string]struct{}),
		result: &Result{
			Root:        abs,
			DryRun:      o.cfg.DryRun,
			Scan:        snap,
			Processed:   make(map[category.Category][]string),
			Suggestions: Suggest(snap.UnknownExtensions()),
		},
	}

	for _, c := range category.All() {
		for _, path := range snap.Buckets[c] {
			if err := ctx.Err(); err != nil {
				return p.result, err
			}
			if c == category.Archives && !o.cfg.SkipUnpack {
				err = p.unpack(path)
			} else {
				err = p.relocate(path, c)
			}
			if err != nil {
				return p.result, err
			}
		}
	}

	if !o.cfg.SkipPrune && !o.cfg.DryRun {
		if err := p.prune(abs); err != nil {
			return p.result, fmt.Errorf("prune: %w", err)
		}
	}

	o.log.Info("run complete",
		"root", abs,
		"moved", p.result.Count(ActionMoved),
		"unpacked", p.result.Count(ActionUnpacked),
		"unpack_failed", p.result.Count(ActionUnpackFailed),
		"pruned", p.result.Count(ActionPruned),
	)
	return p.result, nil
}

// pass holds the state of a single Run.
type pass struct {
	*Organizer
	root   string
	result *Result

	// reserved are destinations claimed earlier in a dry run, which do not
	// exist on disk yet.
	reserved map[string]struct{}
}

func (p *pass) record(a Action) {
	a.DryRun = p.cfg.DryRun
	p.result.Actions = append(p.result.Actions, a)
	switch a.Kind {
	case ActionMoved:
		p.result.BytesMoved += a.Size
		p.result.Processed[a.Category] = append(p.result.Processed[a.Category], filepath.Base(a.Dest))
	case ActionUnpacked:
		p.result.Processed[a.Category] = append(p.result.Processed[a.Category], filepath.Base(a.Dest))
	}
	p.observer.OnAction(a)
}
