package testutil

import (
	"context"
	"os"
	"testing"

	"knox-bundles/internal/config"
	"knox-bundles/internal/infrastructure/sheets"
)

// SetupTestLedger opens a sheets client against a throwaway spreadsheet.
// Expects KNOX_TEST_SPREADSHEET_ID and KNOX_TEST_CREDENTIALS_FILE to point at
// a spreadsheet the service account may write to; skips otherwise. Integration
// tests append rows they never clean up, so use a dedicated test spreadsheet.
func SetupTestLedger(t *testing.T) (*sheets.Client, string) {
	spreadsheetID := os.Getenv("KNOX_TEST_SPREADSHEET_ID")
	credentialsFile := os.Getenv("KNOX_TEST_CREDENTIALS_FILE")
	if spreadsheetID == "" || credentialsFile == "" {
		t.Skip("test spreadsheet not configured")
	}

	sheetName := os.Getenv("KNOX_TEST_SHEET_NAME")
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	client, err := sheets.NewClient(context.Background(), config.SheetsConfig{
		CredentialsFile: credentialsFile,
		SpreadsheetID:   spreadsheetID,
		SheetName:       sheetName,
	})
	if err != nil {
		t.Skipf("test spreadsheet not available: %v", err)
	}

	return client, sheetName
}
