package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jxwalker/pakeshell/internal/appdata"
	"github.com/jxwalker/pakeshell/internal/config"
	"github.com/jxwalker/pakeshell/internal/i18n"
	"github.com/jxwalker/pakeshell/internal/lasturl"
	"github.com/jxwalker/pakeshell/internal/state"
	"github.com/jxwalker/pakeshell/internal/system"
)

// Check represents a single diagnostic check
type Check struct {
	Name     string
	Run      func(ctx context.Context) CheckResult
	Critical bool // If true, failure means the shell cannot start
}

// CheckResult represents the result of a diagnostic check
type CheckResult struct {
	Passed     bool
	Warning    bool // Passed but with warnings
	Message    string
	Suggestion string
}

func doctorChecks(e *env) []Check {
	return []Check{
		{
			Name:     "Configuration documents parse",
			Critical: true,
			Run: func(ctx context.Context) CheckResult {
				p := e.provider()
				app, host, err := config.LoadDocuments(p)
				if err != nil {
					return CheckResult{Message: err.Error(), Suggestion: "Fix the document or switch source.mode back to embedded"}
				}
				if len(app.Windows) == 0 {
					return CheckResult{Passed: true, Warning: true, Message: "pake.json declares no windows"}
				}
				return CheckResult{Passed: true, Message: fmt.Sprintf("source %s, product %q", p.Name(), host.Product())}
			},
		},
		{
			Name:     "Data directory writable",
			Critical: true,
			Run: func(ctx context.Context) CheckResult {
				h, err := e.handle()
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				dir, err := appdata.PackageDataDir(h)
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				probe, err := os.CreateTemp(dir, ".doctor-*")
				if err != nil {
					return CheckResult{Message: fmt.Sprintf("cannot write in %s: %v", dir, err), Suggestion: fmt.Sprintf("chmod u+w %s", dir)}
				}
				_ = probe.Close()
				_ = os.Remove(probe.Name())
				return CheckResult{Passed: true, Message: dir}
			},
		},
		{
			Name: "Last URL record",
			Run: func(ctx context.Context) CheckResult {
				h, err := e.handle()
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				if u, ok := lasturl.New(h, nil).Load(); ok {
					return CheckResult{Passed: true, Message: u}
				}
				return CheckResult{Passed: true, Message: "nothing remembered yet"}
			},
		},
		{
			Name: "Download directory",
			Run: func(ctx context.Context) CheckResult {
				d := e.settings.General.DownloadDir
				if strings.TrimSpace(d) == "" {
					return CheckResult{Passed: true, Warning: true, Message: "general.download_dir is empty", Suggestion: "Set general.download_dir or pass --dir to save"}
				}
				if fi, err := os.Stat(d); err != nil || !fi.IsDir() {
					return CheckResult{Passed: true, Warning: true, Message: fmt.Sprintf("%s does not exist yet; it is created on first save", d)}
				}
				available, err := system.FreeSpace(d)
				if err != nil {
					return CheckResult{Passed: true, Warning: true, Message: fmt.Sprintf("Could not check disk space: %v", err)}
				}
				if available < 1<<30 {
					return CheckResult{
						Passed:     true,
						Warning:    true,
						Message:    fmt.Sprintf("%s: low disk space, %s free", d, humanize.Bytes(available)),
						Suggestion: "Free up disk space; saves that do not fit are refused",
					}
				}
				return CheckResult{Passed: true, Message: fmt.Sprintf("%s (%s free)", d, humanize.Bytes(available))}
			},
		},
		{
			Name: "Download journal",
			Run: func(ctx context.Context) CheckResult {
				if !e.settings.Journal.Enabled {
					return CheckResult{Passed: true, Message: "disabled"}
				}
				h, err := e.handle()
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				dir, err := appdata.PackageDataDir(h)
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				st, err := state.Open(filepath.Join(dir, state.FileName))
				if err != nil {
					return CheckResult{Message: err.Error(), Suggestion: "Remove state.db from the data directory; it is recreated on demand"}
				}
				defer func() { _ = st.Close() }()
				rows, err := st.List(0)
				if err != nil {
					return CheckResult{Message: err.Error()}
				}
				return CheckResult{Passed: true, Message: fmt.Sprintf("%d entries", len(rows))}
			},
		},
		{
			Name: "Locale",
			Run: func(ctx context.Context) CheckResult {
				sel := i18n.Selector{Env: i18n.OSEnv{}}
				v, ok := sel.Locale()
				if !ok {
					return CheckResult{Passed: true, Message: "no locale variable set; messages use the default language"}
				}
				return CheckResult{Passed: true, Message: fmt.Sprintf("%q -> %s messages", v, sel.Bucket())}
			},
		},
	}
}

func newDoctorCmd(e *env) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run environment diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			checks := doctorChecks(e)
			results := make([]CheckResult, len(checks))
			durations := make([]time.Duration, len(checks))

			g, gctx := errgroup.WithContext(cmd.Context())
			for i, check := range checks {
				i, check := i, check
				g.Go(func() error {
					start := time.Now()
					results[i] = check.Run(gctx)
					durations[i] = time.Since(start)
					return nil
				})
			}
			_ = g.Wait()

			failed, warnings := 0, 0
			for i, check := range checks {
				r := results[i]
				symbol := "✓"
				switch {
				case !r.Passed:
					symbol = "✗"
					if check.Critical {
						failed++
					} else {
						warnings++
					}
				case r.Warning:
					symbol = "⚠"
					warnings++
				}
				fmt.Fprintf(out, "%s %s", symbol, check.Name)
				if verbose {
					fmt.Fprintf(out, " (%.2fs)", durations[i].Seconds())
				}
				fmt.Fprintln(out)
				if r.Message != "" {
					fmt.Fprintf(out, "  %s\n", r.Message)
				}
				if r.Suggestion != "" {
					for _, line := range strings.Split(r.Suggestion, "\n") {
						fmt.Fprintf(out, "  → %s\n", line)
					}
				}
			}

			fmt.Fprintf(out, "\nDiagnostic Summary:\n")
			fmt.Fprintf(out, "  Total checks: %d\n", len(checks))
			fmt.Fprintf(out, "  Warnings:     %d\n", warnings)
			fmt.Fprintf(out, "  Failed:       %d\n", failed)
			if failed > 0 {
				return fmt.Errorf("%d critical checks failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show timing for each check")
	return cmd
}
