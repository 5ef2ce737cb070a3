package cli

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	backend    string
	dataDir    string
	logLevel   string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskpad",
		Short: "taskpad - a terminal to-do list",
		Long: `taskpad keeps a list of tasks with optional markdown descriptions.

Running it without a subcommand opens the interactive list.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TASKPAD_CONFIG or <user config dir>/taskpad/config.toml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: sqlite, file or memory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the task records")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newVersionCmd(version))

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig layers command-line flags over the file and environment.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}
