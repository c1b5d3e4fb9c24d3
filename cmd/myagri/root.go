package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri"
	"github.com/aretw0/myagri/pkg/catalog"
	"github.com/aretw0/myagri/pkg/core"
	"github.com/aretw0/myagri/pkg/session"
)

var (
	verbose        bool
	storeDir       string
	adapter        string
	sessionBackend string
	readOnly       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "myagri",
	Short: "Farm activity tracker, crop simulation and mocked crop diagnosis",
	Long: `MyAgri keeps your farm activities as Markdown files, answers help center
questions, simulates a 30 day crop season and runs a mocked image diagnosis.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "Store directory (default: nearest directory holding .myagri, else the working directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Storage adapter: fs or memory")
	rootCmd.PersistentFlags().StringVar(&sessionBackend, "session", "file", "Session backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse every write")
}

// storePath resolves --store, falling back to the enclosing store root.
func storePath() string {
	if storeDir != "" {
		return storeDir
	}
	wd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	if root, err := myagri.FindStoreRoot(wd); err == nil {
		return root
	}
	return wd
}

func commonOptions() []myagri.Option {
	return []myagri.Option{
		myagri.WithAdapter(adapter),
		myagri.WithReadOnly(readOnly),
		myagri.WithSessionBackend(sessionBackend),
		myagri.WithLogger(slog.Default()),
	}
}

// openService opens the store, seeding the sample activities on first use.
func openService() *core.Service {
	opts := append(commonOptions(), myagri.WithSeed(catalog.Activities()))
	svc, err := myagri.New(storePath(), opts...)
	if err != nil {
		fatal("Failed to open store", err)
	}
	return svc
}

func openSession() (*session.Session, io.Closer) {
	sess, closer, err := myagri.OpenSession(storePath(), commonOptions()...)
	if err != nil {
		fatal("Failed to open session", err)
	}
	return sess, closer
}
