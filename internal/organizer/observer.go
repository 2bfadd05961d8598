package organizer

import "github.com/vmunix/cleanfolder/internal/scan"

//go:generate mockgen -destination=mocks/observer.go -package=mocks github.com/vmunix/cleanfolder/internal/organizer Observer

// Observer is notified as a run progresses. Calls happen on the goroutine
// running Organizer.Run, in order.
type Observer interface {
	// OnScan is called once, after the tree has been scanned and before
	// anything is moved.
	OnScan(res *scan.Result)
	// OnAction is called after each filesystem change, or each planned
	// change in a dry run.
	OnAction(a Action)
}

// Observers fans out to several observers in order.
type Observers []Observer

func (obs Observers) OnScan(res *scan.Result) {
	for _, o := range obs {
		o.OnScan(res)
	}
}

func (obs Observers) OnAction(a Action) {
	for _, o := range obs {
		o.OnAction(a)
	}
}

type nopObserver struct{}

func (nopObserver) OnScan(*scan.Result) {}
func (nopObserver) OnAction(Action)     {}
