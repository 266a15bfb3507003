package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

// MergeFlags holds merge flag values. Zero values mean "use the configuration".
type MergeFlags struct {
	LinkStrategy string
	NoCycleGuard bool
	Exclude      []string
	BufferSize   int
	ReadLimit    string
	Output       string
	DiffReport   string
	DiffFormat   string
	MetricsFile  string

	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(
		&flags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/mergeln/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&flags.Verbose,
		"verbose",
		"v",
		false,
		"print a summary after the merge",
	)
	cmd.PersistentFlags().BoolVarP(
		&flags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// AddMergeFlags adds the merge flags to the root command
func AddMergeFlags(cmd *cobra.Command, flags *MergeFlags) {
	cmd.Flags().StringVar(&flags.LinkStrategy, "link-strategy", "", "how duplicates are replaced: replace, atomic (default: replace)")
	cmd.Flags().BoolVar(&flags.NoCycleGuard, "no-cycle-guard", false, "do not detect directory cycles through symlinks")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns to exclude, relative to the first path")
	cmd.Flags().IntVar(&flags.BufferSize, "buffer-size", 0, "comparison chunk size in bytes (default: 65536)")
	cmd.Flags().StringVar(&flags.ReadLimit, "read-limit", "", "limit comparison reads (e.g., \"50M\", \"1G\" per second)")

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&flags.DiffReport, "diff-report", "", "write pairs left unlinked to file")
	cmd.Flags().StringVar(&flags.DiffFormat, "diff-format", "human", "differences report format: human, json")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "write run statistics to a Prometheus textfile")

	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
