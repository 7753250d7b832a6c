package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jxwalker/pakeshell/internal/logging"
	"github.com/jxwalker/pakeshell/internal/state"
	"github.com/jxwalker/pakeshell/internal/util"
)

func newHistoryCmd(e *env) *cobra.Command {
	var limit int
	var verify, wipe, asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, verify or clear the journal of saved downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := e.handle()
			if err != nil {
				return err
			}
			st, err := e.journal(h)
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("journal is disabled (journal.enabled: false)")
			}
			defer func() { _ = st.Close() }()

			out := cmd.OutOrStdout()
			if wipe {
				n, err := st.Clear()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "removed %d entries\n", n)
				return nil
			}
			rows, err := st.List(limit)
			if err != nil {
				return err
			}
			if verify {
				bad := 0
				for _, r := range rows {
					if r.Status != state.StatusSaved {
						continue
					}
					sum, err := util.HashFileSHA256(r.Dest)
					switch {
					case err != nil:
						bad++
						fmt.Fprintf(out, "missing   %s (%v)\n", r.Dest, err)
					case !strings.EqualFold(sum, r.SHA256):
						bad++
						fmt.Fprintf(out, "modified  %s\n", r.Dest)
					default:
						fmt.Fprintf(out, "ok        %s\n", r.Dest)
					}
				}
				if bad > 0 {
					return fmt.Errorf("%d saved files no longer match the journal", bad)
				}
				return nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			for _, r := range rows {
				when := humanize.Time(time.Unix(0, r.UpdatedAt))
				line := fmt.Sprintf("%-8s %-9s %s", r.Status, humanize.Bytes(uint64(r.Size)), r.Dest)
				if r.URL != "" {
					line += "  <- " + logging.SanitizeURL(r.URL)
				}
				if r.LastError != "" {
					line += "  (" + r.LastError + ")"
				}
				fmt.Fprintf(out, "%s  %s\n", line, when)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Re-hash saved files and compare with the journal")
	cmd.Flags().BoolVar(&wipe, "clear", false, "Remove every journal entry")
	cmd.Flags().BoolVar(&asJSON, "as-json", false, "Print entries as JSON")
	return cmd
}
