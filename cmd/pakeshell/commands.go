package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jxwalker/pakeshell/internal/appdata"
	"github.com/jxwalker/pakeshell/internal/downloads"
	"github.com/jxwalker/pakeshell/internal/i18n"
	"github.com/jxwalker/pakeshell/internal/lasturl"
	"github.com/jxwalker/pakeshell/internal/metrics"
	"github.com/jxwalker/pakeshell/internal/notify"
	"github.com/jxwalker/pakeshell/internal/util"
)

func newDataDirCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "datadir",
		Short: "Print (creating if needed) the per-package data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := e.handle()
			if err != nil {
				return err
			}
			dir, err := appdata.PackageDataDir(h)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newLastURLCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last-url",
		Short: "Read or remember the last visited URL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the remembered URL; prints nothing when there is none",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := e.handle()
				if err != nil {
					return err
				}
				if u, ok := lasturl.New(h, e.log).Load(); ok {
					fmt.Fprintln(cmd.OutOrStdout(), u)
					return nil
				}
				e.log.Infof("no remembered url")
				return nil
			},
		},
		&cobra.Command{
			Use:   "set URL",
			Short: "Remember URL (non-http(s) URLs are ignored)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := e.handle()
				if err != nil {
					return err
				}
				if !lasturl.Accepted(args[0]) {
					e.log.Warnf("ignoring %q: only http:// and https:// urls are remembered", args[0])
				}
				return lasturl.New(h, e.log).Save(args[0])
			},
		},
	)
	return cmd
}

func newMessageCmd(e *env) *cobra.Command {
	var lang string
	var toast bool
	cmd := &cobra.Command{
		Use:   "message start|success|failure",
		Short: "Print the localized download status message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := i18n.ParseMessageType(args[0])
			if err != nil {
				return err
			}
			sel := i18n.Selector{Env: i18n.OSEnv{}}
			msg := sel.Resolve(kind, lang, cmd.Flags().Changed("lang"))
			if toast {
				msg = notify.ToastScript(msg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "Language tag (default: probe LANG, LC_ALL, LC_MESSAGES, LANGUAGE)")
	cmd.Flags().BoolVar(&toast, "toast", false, "Print the window script that shows the message")
	return cmd
}

func newUniqueCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "unique PATH...",
		Short: "Print a non-colliding variant of each PATH",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				fmt.Fprintln(cmd.OutOrStdout(), util.ResolveUniquePath(p))
			}
			return nil
		},
	}
}

func newSaveCmd(e *env) *cobra.Command {
	var req downloads.Request
	var src, dir string
	cmd := &cobra.Command{
		Use:   "save --file SRC",
		Short: "Save a payload into the download directory without overwriting anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if src == "" {
				return errors.New("--file is required (use - for stdin)")
			}
			var err error
			if src == "-" {
				req.Data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				req.Data, err = os.ReadFile(src)
			}
			if err != nil {
				return err
			}
			if dir == "" {
				dir = e.settings.General.DownloadDir
			}
			h, err := e.handle()
			if err != nil {
				return err
			}
			journal, err := e.journal(h)
			if err != nil {
				e.log.Warnf("journal unavailable: %v", err)
			}
			if journal != nil {
				defer func() { _ = journal.Close() }()
			}
			m := metrics.New(e.settings)
			s := &downloads.Saver{
				Dir:      dir,
				Window:   notify.WriterWindow{W: cmd.ErrOrStderr()},
				Messages: i18n.Selector{Env: i18n.OSEnv{}},
				Journal:  journal,
				Metrics:  m,
				Log:      e.log,
			}
			res, err := s.Save(cmd.Context(), req)
			if werr := m.Write(); werr != nil {
				e.log.Warnf("metrics: %v", werr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&src, "file", "", "File whose bytes are saved (- for stdin)")
	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default: general.download_dir)")
	cmd.Flags().StringVar(&req.Filename, "name", "", "Suggested file name")
	cmd.Flags().StringVar(&req.URL, "url", "", "Source URL")
	cmd.Flags().StringVar(&req.ContentDisposition, "content-disposition", "", "Content-Disposition header of the response")
	cmd.Flags().StringVar(&req.Language, "lang", "", "Language tag for the toasts")
	return cmd
}
