package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/azimut/internal/config"
	"github.com/HendryAvila/azimut/internal/export"
	"github.com/HendryAvila/azimut/internal/journal"
	"github.com/HendryAvila/azimut/internal/journaltools"
	"github.com/HendryAvila/azimut/internal/query"
	azserver "github.com/HendryAvila/azimut/internal/server"
)

// windowFlags are the filter flags shared by list, insights and export.
type windowFlags struct {
	from, to string
	blocks   []int
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.from, "from", "", "first effective date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&w.to, "to", "", "last effective date (YYYY-MM-DD)")
	cmd.Flags().IntSliceVar(&w.blocks, "block", nil, "blocks to include (repeatable)")
}

func (w *windowFlags) filter() (query.Filter, error) {
	var f query.Filter
	if w.from != "" {
		d, err := journal.ParseDate(w.from)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.Start = &d
	}
	if w.to != "" {
		d, err := journal.ParseDate(w.to)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		f.End = &d
	}
	for _, b := range w.blocks {
		c := journal.Category(b)
		if err := journal.ValidateCategory(c); err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, c)
	}
	return f, nil
}

func parseMeta(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("--meta %q: want key=value", p)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

func addCmd(a *app) *cobra.Command {
	var (
		block              int
		date, label, value string
		meta               []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ann, err := parseMeta(meta)
			if err != nil {
				return err
			}
			if date != "" {
				if _, err := journal.ParseDate(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			e, err := a.session(cmd.ErrOrStderr()).Record(journal.Category(block), date, label, value, ann)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Recorded in Bloque %d (%s) for %s\n", int(e.Category), e.Category.Name(), e.Effective())
			return nil
		},
	}

	cmd.Flags().IntVar(&block, "block", 0, "program block 1-9")
	cmd.Flags().StringVar(&date, "date", "", "date the answer refers to (default today)")
	cmd.Flags().StringVar(&label, "label", "", "prompt or concept")
	cmd.Flags().StringVar(&value, "value", "", "the answer")
	cmd.Flags().StringArrayVar(&meta, "meta", nil, "annotation key=value (repeatable)")
	_ = cmd.MarkFlagRequired("block")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func listCmd(a *app) *cobra.Command {
	var w windowFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the history grouped by block and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := w.filter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, journaltools.FormatHistory(a.session(cmd.ErrOrStderr()).History(f)))
			return nil
		},
	}
	w.register(cmd)
	return cmd
}

func insightsCmd(a *app) *cobra.Command {
	var (
		w    windowFlags
		asOf string
	)

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show streaks, patterns and recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := w.filter()
			if err != nil {
				return err
			}
			day := a.svc.Today()
			if asOf != "" {
				if day, err = journal.ParseDate(asOf); err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, journaltools.FormatInsights(a.session(cmd.ErrOrStderr()).Insights(f, day)))
			return nil
		},
	}
	w.register(cmd)
	cmd.Flags().StringVar(&asOf, "as-of", "", "day streaks are measured at (default today)")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var (
		w            windowFlags
		format, dest string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as xlsx or csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := w.filter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			table := a.session(cmd.ErrOrStderr()).Export(f)

			if dest == "" || dest == "-" {
				if format == export.FormatXLSX {
					return fmt.Errorf("--out is required for xlsx")
				}
				return export.Write(out, format, table)
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, format, table); err != nil {
				return err
			}
			if err := os.WriteFile(dest, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}
			fmt.Fprintf(out, "Exported %d entries to %s\n", len(table.Rows), dest)
			return nil
		},
	}
	w.register(cmd)
	cmd.Flags().StringVar(&format, "format", export.FormatXLSX, "xlsx or csv")
	cmd.Flags().StringVar(&dest, "out", "", "output file (csv may use - for stdout)")
	return cmd
}

func clearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry of the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			out := cmd.OutOrStdout()
			s := a.session(cmd.ErrOrStderr())
			n := len(s.Entries())
			if err := s.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Journal cleared (%d entries removed)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func profileCmd(a *app) *cobra.Command {
	var (
		start                      string
		daysPerWeek, entriesPerDay int
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set adherence goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := a.session(cmd.ErrOrStderr())
			current := s.Profile()

			changed := cmd.Flags().Changed
			if !changed("start") && !changed("days-per-week") && !changed("entries-per-day") {
				fmt.Fprintln(out, journaltools.FormatProfile(current))
				return nil
			}

			var p journal.Profile
			if current != nil {
				p = *current
			}
			if changed("start") {
				p.StartDate = &start
			}
			if changed("days-per-week") {
				p.TargetDaysPerWeek = daysPerWeek
			}
			if changed("entries-per-day") {
				p.TargetEntriesPerDay = entriesPerDay
			}
			if err := s.SaveProfile(p); err != nil {
				return err
			}
			fmt.Fprintln(out, journaltools.FormatProfile(&p))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "program start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&daysPerWeek, "days-per-week", 0, "target active days per week")
	cmd.Flags().IntVar(&entriesPerDay, "entries-per-day", 0, "target entries per active day")
	return cmd
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show journal size and storage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := a.session(cmd.ErrOrStderr())
			entries := s.Entries()

			fmt.Fprintf(out, "Backend: %s\nRoot: %s\nEntries: %d\n", a.cfg.Backend, a.cfg.StorageRoot, len(entries))
			for _, c := range query.Distribution(entries) {
				fmt.Fprintf(out, "  Bloque %d (%s): %d\n", int(c.Category), c.Category.Name(), c.Count)
			}

			samples, err := a.metrics.Snapshot()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, journaltools.FormatStats(samples))
			return nil
		},
	}
}

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolvedConfigPath()
			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := azserver.New(a.svc, a.metrics)
			a.log.WithField("version", azserver.Version).Info("serving MCP on stdio")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stdio := server.NewStdioServer(s)
			return stdio.Listen(ctx, os.Stdin, os.Stdout)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "azimut v%s\n", azserver.Version)
		},
	}
}
