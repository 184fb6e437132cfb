package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"campuslib/library"
)

// Admin credentials are fixed and independent of the student registry.
const (
	adminUsername = "admin"
	adminPassword = "Admin@123"
)

var dataDirFlag string

func main() {
	root := &cobra.Command{
		Use:          "campuslib",
		Short:        "Terminal library catalog and lending tracker",
		RunE:         runInteractive,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"directory holding students.dat and logs.dat (overrides LIBRARY_DATA_DIR)")

	root.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Dump the persisted audit log and exit",
		RunE:  runLogs,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newManager() (*library.Manager, error) {
	cfg := loadConfig()
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return library.NewManager(library.Options{
		DataDir:       cfg.DataDir,
		HashPasswords: cfg.HashPasswords,
		Logger:        logger,
	})
}

func runInteractive(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return fmt.Errorf("open library data: %w", err)
	}
	defer mgr.Close()

	loginSystem(mgr)
	fmt.Println("\nThanks for using the Library Management System!")
	return nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	// Read-only command: skip the shutdown flush.
	mgr, err := newManager()
	if err != nil {
		return fmt.Errorf("open library data: %w", err)
	}

	printLogs(mgr.Logs())
	return nil
}
