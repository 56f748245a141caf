package google

import (
	"context"
	"errors"
	"fmt"

	sheets "offersync/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client talks to the Google Sheets API on behalf of the sync run.
// Reads use UNFORMATTED_VALUE so numbers arrive as numbers, with dates
// rendered as the formatted strings the parser classifies on.
type Client struct {
	svc *gsheet.Service
}

// Ensure interface conformance
var _ sheets.API = (*Client)(nil)

// NewClient creates a Sheets client from service-account credentials.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, errors.New("missing service account credentials")
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) ReadValues(ctx context.Context, spreadsheetID, a1Range string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a1Range, err)
	}
	return resp.Values, nil
}

func (c *Client) ClearSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, sheetName, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", sheetName, err)
	}
	return nil
}

func (c *Client) WriteValues(ctx context.Context, spreadsheetID, a1Range string, values [][]any) error {
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, a1Range, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", a1Range, err)
	}
	return nil
}

func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// EnsureSheet returns the sheet ID for sheetName, creating the sheet
// when the spreadsheet does not have it yet.
func (c *Client) EnsureSheet(ctx context.Context, spreadsheetID, sheetName string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == sheetName {
			return s.Properties.SheetId, nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{
			{AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: sheetName}}},
		},
	}
	resp, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("add sheet %s: %w", sheetName, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("add sheet %s: empty reply", sheetName)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}
