package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"filedesk/internal/cli"
	"filedesk/internal/filter"
	"filedesk/internal/model"
	"filedesk/internal/pager"
	"filedesk/internal/session"
	"filedesk/internal/tui"
)

func historyCmd() *cobra.Command {
	var (
		search      string
		statusVal   string
		company     string
		dateFrom    string
		dateTo      string
		page        int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse your filing history",
		Long: `Show the filing history, filtered and paginated. The search term matches
the request id, company name, file name, status and description.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			records, err := a.filings.History(ctx, user.Email())
			if err != nil {
				return err
			}

			if interactive {
				shared, err := a.ledger.SharedWithMe(ctx, user.Email())
				if err != nil {
					return err
				}
				if err := a.sessions.SetView(ctx, session.ViewHistory); err != nil {
					return err
				}
				return tui.Run(ctx, records, shared, pageSize())
			}

			from, err := parseDate(dateFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			to, err := parseDate(dateTo)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			spec := model.FilterSpec{
				Search:      search,
				Status:      model.Status(statusVal),
				CompanyName: company,
				DateFrom:    from,
				DateTo:      to,
			}

			filtered := filter.Apply(records, spec)
			rows, window := pager.Slice(filtered, pageSize(), page)

			if err := a.sessions.SetView(ctx, session.ViewHistory); err != nil {
				return err
			}

			renderHistoryTable(rows, window, !spec.Empty(), len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search across all fields")
	cmd.Flags().StringVar(&statusVal, "status", "", "filter by status (Processing, Completed)")
	cmd.Flags().StringVar(&company, "company", "", "filter by exact company name")
	cmd.Flags().StringVar(&dateFrom, "from", "", "filter from date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateTo, "to", "", "filter to date (YYYY-MM-DD, inclusive)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive browser")

	return cmd
}

func renderHistoryTable(rows []model.FilingRecord, window pager.Page, filtered bool, total int) {
	if len(rows) == 0 {
		if filtered {
			fmt.Println(cli.FormatInfo("No records match the current filters."))
		} else {
			fmt.Println(cli.FormatInfo("No filings yet."))
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Request ID"),
		cli.TableHeaderStyle.Render("Company Name"),
		cli.TableHeaderStyle.Render("File Name"),
		cli.TableHeaderStyle.Render("Status"),
		cli.TableHeaderStyle.Render("Uploaded On"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 24),
		strings.Repeat("-", 28),
		strings.Repeat("-", 10),
		strings.Repeat("-", 12))

	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.RequestID(),
			r.Details.CompanyName,
			r.Filename,
			cli.FormatStatus(string(r.Status)),
			r.CreatedAt.Format("2006-01-02"))
	}

	if filtered {
		fmt.Fprintf(w, "\nShowing %d of %d records\n", window.Total, total)
	}
	if window.TotalPages > 1 {
		nums := pager.PageNumbers(window.Number, window.TotalPages)
		parts := make([]string, 0, len(nums))
		for _, n := range nums {
			if n == window.Number {
				parts = append(parts, cli.BoldStyle.Render(fmt.Sprintf("[%d]", n)))
			} else {
				parts = append(parts, fmt.Sprintf("%d", n))
			}
		}
		fmt.Fprintf(w, "\nShowing %d to %d of %d entries\tpages: %s\n",
			window.StartIndex+1, window.EndIndex, window.Total, strings.Join(parts, " "))
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-status filing counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			counts, err := a.filings.StatusCounts(ctx, user.Email())
			if err != nil {
				return err
			}

			if err := a.sessions.SetView(ctx, session.ViewDashboard); err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Dashboard"))
			fmt.Printf("  %s\t%d\n", cli.FormatStatus("Processing"), counts[model.StatusProcessing])
			fmt.Printf("  %s\t%d\n", cli.FormatStatus("Completed"), counts[model.StatusCompleted])
			return nil
		},
	}
}

func downloadCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "download <record-id>",
		Short: "Download a completed filing's summary",
		Long:  `Write a generated text summary of a Completed filing to the output directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			user, err := a.requireUser(ctx)
			if err != nil {
				return err
			}

			path, err := a.filings.Download(ctx, args[0], user.Email(), outDir)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Saved " + path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")

	return cmd
}
