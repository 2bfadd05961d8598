package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vmunix/cleanfolder/internal/category"
	"github.com/vmunix/cleanfolder/internal/organizer"
)

// runReport is the --json form of a run.
type runReport struct {
	Root              string              `json:"root"`
	DryRun            bool                `json:"dry_run"`
	Processed         map[string][]string `json:"processed"`
	KnownExtensions   []string            `json:"known_extensions"`
	UnknownExtensions []string            `json:"unknown_extensions"`
	Suggestions       map[string]string   `json:"suggestions,omitempty"`
	Moved             int                 `json:"moved"`
	Unpacked          int                 `json:"unpacked"`
	Pruned            int                 `json:"pruned"`
	BytesMoved        int64               `json:"bytes_moved"`
	FailedArchives    []failedArchive     `json:"failed_archives,omitempty"`
	Warnings          []string            `json:"warnings,omitempty"`
}

type failedArchive struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func newRunReport(res *organizer.Result) runReport {
	r := runReport{
		Root:              res.Root,
		DryRun:            res.DryRun,
		Processed:         make(map[string][]string),
		KnownExtensions:   res.Scan.KnownExtensions(),
		UnknownExtensions: res.Scan.UnknownExtensions(),
		Suggestions:       res.Suggestions,
		Moved:             res.Count(organizer.ActionMoved),
		Unpacked:          res.Count(organizer.ActionUnpacked),
		Pruned:            res.Count(organizer.ActionPruned),
		BytesMoved:        res.BytesMoved,
	}
	for c, names := range res.Processed {
		r.Processed[string(c)] = names
	}
	for _, a := range res.Actions {
		if a.Kind == organizer.ActionUnpackFailed {
			r.FailedArchives = append(r.FailedArchives, failedArchive{Path: a.Source, Error: errString(a.Err)})
		}
	}
	for _, err := range res.Errors {
		r.Warnings = append(r.Warnings, err.Error())
	}
	return r
}

// renderReport prints what a run did: per category the resulting names,
// then the extensions seen and any problems. fancy selects table output.
func renderReport(w io.Writer, res *organizer.Result, fancy bool) {
	if res.DryRun {
		fmt.Fprintf(w, "Dry run, nothing was changed in %s\n\n", res.Root)
	} else {
		fmt.Fprintf(w, "Sorted %s\n\n", res.Root)
	}

	if fancy {
		renderCategoryTable(w, res)
	} else {
		renderCategoryLines(w, res)
	}

	fmt.Fprintf(w, "\nKnown extensions:   %s\n", joinOrNone(res.Scan.KnownExtensions()))
	fmt.Fprintf(w, "Unknown extensions: %s\n", joinOrNone(unknownWithHints(res)))

	var failed []organizer.Action
	for _, a := range res.Actions {
		if a.Kind == organizer.ActionUnpackFailed {
			failed = append(failed, a)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(w, "\nArchives left in place (%d):\n", len(failed))
		for _, a := range failed {
			fmt.Fprintf(w, "  %s: %s\n", a.Source, errString(a.Err))
		}
	}
	if len(res.Errors) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, err := range res.Errors {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}

	fmt.Fprintf(w, "\n%d moved (%s), %d unpacked, %d empty folders removed\n",
		res.Count(organizer.ActionMoved),
		humanize.Bytes(uint64(res.BytesMoved)),
		res.Count(organizer.ActionUnpacked),
		res.Count(organizer.ActionPruned),
	)
}

func renderCategoryTable(w io.Writer, res *organizer.Result) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Count", "Names"})
	for _, c := range category.All() {
		names := res.Processed[c]
		if len(names) == 0 {
			continue
		}
		tw.AppendRow(table.Row{string(c), len(names), strings.Join(names, "\n")})
		tw.AppendSeparator()
	}
	if tw.Length() == 0 {
		fmt.Fprintln(w, "Nothing to sort.")
		return
	}
	fmt.Fprintln(w, tw.Render())
}

func renderCategoryLines(w io.Writer, res *organizer.Result) {
	empty := true
	for _, c := range category.All() {
		names := res.Processed[c]
		if len(names) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(w, "%s (%d):\n", c, len(names))
		for _, name := range names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if empty {
		fmt.Fprintln(w, "Nothing to sort.")
	}
}

func unknownWithHints(res *organizer.Result) []string {
	unknown := res.Scan.UnknownExtensions()
	out := make([]string, len(unknown))
	for i, ext := range unknown {
		out[i] = ext
		if hint, ok := res.Suggestions[ext]; ok {
			out[i] = fmt.Sprintf("%s (did you mean %s?)", ext, hint)
		}
	}
	return out
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
