package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"knox-bundles/internal/config"
)

// Client wraps the Google Sheets values API for one spreadsheet, authenticated
// with a service-account credential file.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

func (c *Client) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	vr := &sheetsapi.ValueRange{Values: rows}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *Client) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return resp.Values, nil
}

func (c *Client) Update(ctx context.Context, rng string, rows [][]interface{}) error {
	vr := &sheetsapi.ValueRange{Values: rows}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
