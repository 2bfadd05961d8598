package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vmunix/cleanfolder/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past runs",
	Long: `Lists recent runs, most recent first. With a run id (or a unique prefix
of one) lists what that run changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Number of runs to list (0 for all)")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		run, err := store.GetRun(args[0])
		if err != nil {
			return err
		}
		actions, err := store.Actions(run.ID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, map[string]any{"run": run, "actions": actions})
		}
		printRunDetail(out, run, actions)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(out, runs)
	}
	printRuns(out, runs)
	return nil
}

func printRuns(w io.Writer, runs []*history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Started", "Status", "Moved", "Unpacked", "Failed", "Size", "Root"})
	for _, r := range runs {
		tw.AppendRow(table.Row{
			shortID(r.ID),
			humanize.Time(r.StartedAt),
			r.Status,
			r.Moved,
			r.Unpacked,
			r.UnpackFailed,
			humanize.Bytes(uint64(r.BytesMoved)),
			r.Root,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	fmt.Fprintln(w, tw.Render())
}

func printRunDetail(w io.Writer, run *history.Run, actions []*history.Action) {
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  Root:      %s\n", run.Root)
	fmt.Fprintf(w, "  Started:   %s\n", run.StartedAt.Local().Format(time.DateTime))
	if run.FinishedAt != nil {
		fmt.Fprintf(w, "  Finished:  %s (%s)\n", run.FinishedAt.Local().Format(time.DateTime), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "  Status:    %s\n", run.Status)
	fmt.Fprintf(w, "  Collision: %s\n", run.Collision)
	if run.Error != "" {
		fmt.Fprintf(w, "  Error:     %s\n", run.Error)
	}
	if len(run.UnknownExtensions) > 0 {
		fmt.Fprintf(w, "  Unknown:   %s\n", joinOrNone(run.UnknownExtensions))
	}
	fmt.Fprintln(w)

	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions recorded")
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Action", "Source", "Destination", "Size"})
	for i, a := range actions {
		dest := a.Dest
		if a.Error != "" {
			dest = "error: " + a.Error
		}
		size := ""
		if a.Size > 0 {
			size = humanize.Bytes(uint64(a.Size))
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), a.Kind, a.Source, dest, size})
	}
	fmt.Fprintln(w, tw.Render())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
