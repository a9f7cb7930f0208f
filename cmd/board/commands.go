package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daliphone/money-marketing-room/internal/app"
	database "github.com/daliphone/money-marketing-room/internal/db"
	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/schedule"
	"github.com/daliphone/money-marketing-room/internal/views"
)

// CLI holds what the subcommands share. deps is resolved lazily because the
// root command builds it in PersistentPreRunE.
type CLI struct {
	deps func() *app.Deps
	out  io.Writer
}

func (cli *CLI) todayCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "today",
		Short: "🔥 Tasks due and campaigns running today",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := cli.deps()
			today, err := dateFlag(date, d.Board.Today())
			if err != nil {
				return err
			}
			v, err := d.Board.Views(cmd.Context(), today)
			if err != nil {
				return err
			}
			return cli.printToday(v)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	return cmd
}

func (cli *CLI) planningCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "planning",
		Short: "💡 Drafts in the planning pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := cli.deps().Board.Records(cmd.Context())
			if err != nil {
				return err
			}
			return cli.printTable(views.Table(schedule.PlanningPool(records)))
		},
	}
}

func (cli *CLI) archivedCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "archived",
		Short: "📦 Executing records whose window has closed",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := cli.deps()
			today, err := dateFlag(date, d.Board.Today())
			if err != nil {
				return err
			}
			records, err := d.Board.Records(cmd.Context())
			if err != nil {
				return err
			}
			return cli.printTable(views.Table(schedule.Archived(records, today)))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	return cmd
}

func (cli *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "📂 Every record in the sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := cli.deps().Board.Records(cmd.Context())
			if err != nil {
				return err
			}
			return cli.printTable(views.Table(records))
		},
	}
}

func (cli *CLI) rangeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "range START END",
		Short: "🗓️ Records overlapping a date range (inclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := models.ParseDate(args[0]), models.ParseDate(args[1])
			if !start.Valid() || !end.Valid() {
				return errors.New("dates must be YYYY-MM-DD")
			}
			if start.After(end) {
				return errors.New("START must not be after END")
			}
			records, err := cli.deps().Board.Records(cmd.Context())
			if err != nil {
				return err
			}
			return cli.printTimeline(views.Timeline(records, start, end))
		},
	}
}

func (cli *CLI) addCommand() *cobra.Command {
	var sub schedule.Submission
	cmd := &cobra.Command{
		Use:   "add",
		Short: "➕ Append a campaign or recurring post",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := cli.deps().Builder.Submit(cmd.Context(), sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "✅ Added %s (%s) %s → %s\n", rec.Name, rec.Status, rec.StartDate, rec.EndDate)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&sub.Name, "name", "", "activity name (required)")
	f.StringVar(&sub.Kind, "kind", "", "行銷案 or 常態 (default 行銷案)")
	f.StringVar(&sub.Status, "status", "", "企畫中 or 執行中 (default 企畫中)")
	f.StringVar(&sub.CycleMode, "cycle", "", "單次, 每日 or 重覆 (特定星期) (default 單次)")
	f.StringSliceVar(&sub.Weekdays, "weekday", nil, "weekday label for 重覆 mode, repeatable (e.g. 每週一)")
	f.StringSliceVar(&sub.Platforms, "platform", nil, "platform, repeatable")
	f.StringVar(&sub.OtherPlatform, "other-platform", "", "free-text platform")
	f.StringSliceVar(&sub.Formats, "format", nil, "format, repeatable")
	f.StringVar(&sub.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&sub.EndDate, "end", "", "end date (YYYY-MM-DD)")
	f.StringVar(&sub.Note, "note", "", "copy notes")
	f.StringVar(&sub.Owner, "owner", "", "owner")
	f.StringVar(&sub.Link, "link", "", "related link")
	return cmd
}

func (cli *CLI) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "🌱 Fill an empty sheet with a demonstration schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := database.SeedSchedule(cmd.Context(), cli.deps().Store)
			if err != nil {
				return err
			}
			if !wrote {
				fmt.Fprintln(cli.out, "Sheet already has data, nothing seeded.")
			}
			return nil
		},
	}
}

func (cli *CLI) printToday(v schedule.Views) error {
	fmt.Fprintf(cli.out, "📅 %s (%s)\n\n", v.Today, v.TodayLabel)

	fmt.Fprintln(cli.out, "✅ Recurring posts due")
	if len(v.DueToday) == 0 {
		fmt.Fprintln(cli.out, "   none")
	}
	for _, r := range v.DueToday {
		fmt.Fprintf(cli.out, "   • %s  [%s | %s]  👤 %s\n", r.Name, schedule.JoinSet(r.Platforms), schedule.JoinSet(r.Formats), r.Owner)
	}

	fmt.Fprintln(cli.out, "\n🚀 Running campaigns")
	if len(v.ActiveCampaigns) == 0 {
		fmt.Fprintln(cli.out, "   none")
	}
	for _, c := range v.ActiveCampaigns {
		fmt.Fprintf(cli.out, "   • %s  %3.0f%%  ⏳ %d days left\n", c.Record.Name, c.Progress*100, c.DaysRemaining)
	}
	return nil
}

func (cli *CLI) printTable(rows []views.TableRow) error {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tKIND\tNAME\tSTART\tEND\tCYCLE\tSTATUS\tOWNER\tISSUE")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Row, r.Kind, r.Name, r.Start, r.End, r.CycleMode, r.Status, r.Owner, r.DateIssue)
	}
	return w.Flush()
}

func (cli *CLI) printTimeline(bars []views.TimelineBar) error {
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "START\tEND\tDAYS\tKIND\tSTATUS\tNAME")
	for _, b := range bars {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", b.Start, b.End, b.Days, b.Kind, b.Status, b.Name)
	}
	return w.Flush()
}

func dateFlag(raw string, def models.Date) (models.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	d := models.ParseDate(raw)
	if !d.Valid() {
		return models.InvalidDate, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return d, nil
}
