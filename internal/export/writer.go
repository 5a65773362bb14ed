package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"filedesk/internal/auth"
	"filedesk/internal/model"
)

// SheetWriter writes a filing history snapshot somewhere tabular.
type SheetWriter interface {
	Write(ctx context.Context, records []model.FilingRecord) error
}

// Writer implements SheetWriter against the Google Sheets API.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets writer from a stored OAuth token.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	token, err := auth.LoadToken(config.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load export token: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write replaces the configured sheet's contents with the given records.
func (w *Writer) Write(ctx context.Context, records []model.FilingRecord) error {
	w.logger.Info("starting sheet export", "records", len(records))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	clearRange := fmt.Sprintf("%s!A:H", w.config.SheetName)
	_, err = w.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := buildRows(records)
	_, err = w.service.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A1", w.config.SheetName), &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))
	return nil
}

// getOrCreateSpreadsheet returns the configured spreadsheet id, creating a
// new spreadsheet when none is configured.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	spreadsheet, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: w.config.SpreadsheetName,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: w.config.SheetName}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	w.logger.Info("created spreadsheet", "spreadsheet_id", spreadsheet.SpreadsheetId)
	return spreadsheet.SpreadsheetId, nil
}

// buildRows converts records to sheet rows, header first.
func buildRows(records []model.FilingRecord) [][]any {
	values := make([][]any, 0, len(records)+1)
	values = append(values, []any{
		"Request ID", "Company Name", "File Name", "Mandate",
		"Type of Submission", "Status", "Uploaded On", "Description",
	})
	for _, r := range records {
		values = append(values, []any{
			r.RequestID(),
			r.Details.CompanyName,
			r.Filename,
			string(r.Details.Mandate),
			r.Details.SubmissionType,
			string(r.Status),
			r.CreatedAt.Format(time.RFC3339),
			r.Details.Description,
		})
	}
	return values
}
