package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dance/internal/config"
)

var (
	flagInitPath  string
	flagInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration that 'dance play' would use, after merging
the file found on the search path over the built-in defaults.

Search order: --config, ~/.dance/config.yaml, ./configs/dance.yaml, built-in.`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Args:  cobra.NoArgs,
	Run:   runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	configInitCmd.Flags().StringVar(&flagInitPath, "path", "", "Destination (default: ~/.dance/config.yaml)")
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("# source: %s\n", cfg.Source)
	for _, w := range cfg.Warnings {
		fmt.Printf("# corrected: %s\n", w)
	}
	if err := config.Export(os.Stdout, cfg); err != nil {
		fail("%v", err)
	}
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := flagInitPath
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		fail("cannot resolve home directory, pass --path")
	}
	if _, err := os.Stat(expandHome(path)); err == nil && !flagInitForce {
		fail("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
