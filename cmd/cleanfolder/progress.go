package main

import (
	"github.com/schollz/progressbar/v3"

	"github.com/vmunix/cleanfolder/internal/organizer"
	"github.com/vmunix/cleanfolder/internal/scan"
)

// progressObserver draws a progress bar on stderr, one step per file.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func (p *progressObserver) OnScan(res *scan.Result) {
	if res.Files() == 0 {
		return
	}
	p.bar = progressbar.Default(int64(res.Files()), "Sorting")
}

func (p *progressObserver) OnAction(a organizer.Action) {
	if p.bar == nil || a.Kind == organizer.ActionPruned {
		return
	}
	_ = p.bar.Add(1)
}

func (p *progressObserver) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
