// Package export writes filing history to Google Sheets.
package export

import (
	"fmt"
)

// Config holds the configuration for the Google Sheets export.
type Config struct {
	ClientID        string
	ClientSecret    string
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
	SheetName       string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "filedesk filing history",
		SheetName:       "Filings",
	}
}

// Validate checks that the config carries a usable auth setup.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("export requires OAuth client credentials")
	}
	if c.TokenFile == "" {
		return fmt.Errorf("export requires a token file path")
	}
	if c.SheetName == "" {
		return fmt.Errorf("export requires a sheet name")
	}
	return nil
}
