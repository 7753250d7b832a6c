package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jxwalker/pakeshell/internal/appdata"
	"github.com/jxwalker/pakeshell/internal/config"
	"github.com/jxwalker/pakeshell/internal/logging"
	"github.com/jxwalker/pakeshell/internal/state"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is what every subcommand gets after the persistent flags are processed.
type env struct {
	cfgPath  string
	logLevel string
	jsonLogs bool

	settings *config.Settings
	log      *logging.Logger
}

func (e *env) load() error {
	s, err := config.LoadOrDefault(e.cfgPath)
	if err != nil {
		return err
	}
	e.settings = s
	level := s.Logging.Level
	if e.logLevel != "" {
		level = e.logLevel
	}
	e.log = logging.New(level, e.jsonLogs || s.Logging.Format == "json")
	return nil
}

func (e *env) provider() config.Provider { return config.SelectProvider(e.settings) }

// handle resolves the product name (settings first, then the host document) and
// returns the handle the persistence packages work against.
func (e *env) handle() (appdata.Handle, error) {
	product := e.settings.General.ProductName
	if product == "" {
		_, host, err := config.LoadDocuments(e.provider())
		if err != nil {
			return nil, err
		}
		product = host.Product()
	}
	return appdata.OSHandle{Product: product, Root: e.settings.General.ConfigRoot}, nil
}

// journal opens the download journal in the data directory, or returns nil when
// the journal is disabled.
func (e *env) journal(h appdata.Handle) (*state.DB, error) {
	if !e.settings.Journal.Enabled {
		return nil, nil
	}
	dir, err := appdata.PackageDataDir(h)
	if err != nil {
		return nil, err
	}
	return state.Open(filepath.Join(dir, state.FileName))
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "pakeshell",
		Short:         "Persistence and naming utilities for a pake desktop shell",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
	}
	root.PersistentFlags().StringVar(&e.cfgPath, "config", "", "Path to YAML settings file (or "+config.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&e.jsonLogs, "json", false, "JSON log output")

	root.AddCommand(
		newConfigCmd(e),
		newDataDirCmd(e),
		newLastURLCmd(e),
		newMessageCmd(e),
		newUniqueCmd(e),
		newSaveCmd(e),
		newHistoryCmd(e),
		newDoctorCmd(e),
		&cobra.Command{
			Use:   "version",
			Short: "Print version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}
