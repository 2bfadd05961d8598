package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cleanfolder [flags] <path>",
	Short: "Sort a folder by file type",
	Long: `cleanfolder - sort a folder by file type

Moves every file below <path> into images, video, documents, audio,
archives or other, transliterating Cyrillic names to Latin and replacing
other unusual characters with underscores. Archives are extracted into
archives/<name>. Folders left empty are removed.

Folders already named after a category are not touched, so running
cleanfolder twice is safe.`,
	Example: `  cleanfolder ~/Downloads
  cleanfolder --dry-run ~/Downloads
  cleanfolder --collision fail --no-unpack ./inbox
  cleanfolder history`,
	Args:          cobra.ExactArgs(1),
	RunE:          runOrganize,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: search CLEANFOLDER_CONFIG, ./cleanfolder.toml, XDG, /etc)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Flags().Bool("dry-run", false, "Show what would change without touching anything")
	rootCmd.Flags().String("collision", "", "When a name is taken: rename, overwrite or fail")
	rootCmd.Flags().Bool("no-unpack", false, "Move archives instead of extracting them")
	rootCmd.Flags().Bool("no-prune", false, "Keep folders left empty")
	rootCmd.Flags().Bool("no-history", false, "Do not record this run")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cleanfolder {{.Version}}\n")
}
