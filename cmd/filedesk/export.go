package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filedesk/internal/cli"
	"filedesk/internal/config"
	"filedesk/internal/export"
	"filedesk/internal/filter"
	"filedesk/internal/model"
)

func exportCmd() *cobra.Command {
	var (
		search     string
		statusFlag string
		company    string
		from, to   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filing history to Google Sheets",
		Long: `Export the current user's filing history to a Google Sheet.
Requires OAuth client credentials and a stored token; configure them under
the export section of the config file or FILEDESK_EXPORT_* environment
variables. The same filter flags as the history command apply.`,
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

			cfg := exportConfig()
			writer, err := export.NewWriter(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}

			records, err := a.filings.History(ctx, user.Email())
			if err != nil {
				return err
			}

			dateFrom, err := parseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			dateTo, err := parseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			filtered := filter.Apply(records, model.FilterSpec{
				Search:      search,
				Status:      model.Status(statusFlag),
				CompanyName: company,
				DateFrom:    dateFrom,
				DateTo:      dateTo,
			})

			if err := writer.Write(ctx, filtered); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d filing(s) to %q", len(filtered), cfg.SheetName)))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over id, company, filename, status and description")
	cmd.Flags().StringVar(&statusFlag, "status", "", "exact status filter (Processing, Completed)")
	cmd.Flags().StringVar(&company, "company", "", "exact company name filter")
	cmd.Flags().StringVar(&from, "from", "", "earliest upload date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest upload date (YYYY-MM-DD)")

	return cmd
}

// exportConfig assembles the sheets export config from viper, falling back
// to the login token file when no export-specific token is configured.
func exportConfig() export.Config {
	cfg := export.DefaultConfig()
	cfg.ClientID = viper.GetString("export.client_id")
	cfg.ClientSecret = viper.GetString("export.client_secret")
	cfg.SpreadsheetID = viper.GetString("export.spreadsheet_id")

	if name := viper.GetString("export.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if sheet := viper.GetString("export.sheet_name"); sheet != "" {
		cfg.SheetName = sheet
	}

	tokenFile := viper.GetString("export.token_file")
	if tokenFile == "" {
		tokenFile = viper.GetString("oauth.token_file")
	}
	if tokenFile == "" {
		tokenFile = "$HOME/.config/filedesk/token.json"
	}
	cfg.TokenFile = config.ExpandPath(tokenFile)

	return cfg
}
