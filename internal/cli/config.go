package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/mergeln/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(global *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the mergeln configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigInitCommand(global))

	return cmd
}

func newConfigShowCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			exclude := "(none)"
			if len(cfg.Exclude) > 0 {
				exclude = strings.Join(cfg.Exclude, ", ")
			}
			readLimit := cfg.Performance.ReadLimit
			if readLimit == "" {
				readLimit = "(unlimited)"
			}
			metricsFile := cfg.Output.MetricsFile
			if metricsFile == "" {
				metricsFile = "(disabled)"
			}
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = "(disabled)"
			}

			fmt.Fprintf(out, "Link Strategy: %s\n", cfg.Merge.LinkStrategy)
			fmt.Fprintf(out, "Cycle Guard: %t\n", cfg.Merge.GuardCycles)
			fmt.Fprintf(out, "Buffer Size: %d\n", cfg.Performance.BufferSize)
			fmt.Fprintf(out, "Read Limit: %s\n", readLimit)
			fmt.Fprintf(out, "Exclude: %s\n", exclude)
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Quiet: %t\n", cfg.Output.Quiet)
			fmt.Fprintf(out, "Summary: %t\n", cfg.Output.Summary)
			fmt.Fprintf(out, "Metrics File: %s\n", metricsFile)
			fmt.Fprintf(out, "Log File: %s\n", logFile)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand(global *GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if err := config.SaveToFile(config.Default(), path, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}
