package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Store is the only I/O boundary the intake services depend on.
// Rows cross this boundary as positional arrays; named records live above it.
type Store interface {
	// GetRange reads a rectangular range and returns it as trimmed-width string rows.
	GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	// Append appends rows after the last data row of the range's table.
	Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error
	// Update overwrites exactly the given range.
	Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error
	// CreateSpreadsheet creates a spreadsheet inside the configured Drive
	// folder with its first tab named initialTab. Returns the id and URL.
	CreateSpreadsheet(ctx context.Context, title, initialTab string) (string, string, error)
	// AddTab adds an empty tab to an existing spreadsheet.
	AddTab(ctx context.Context, spreadsheetID, title string) error
	// GrantWriter shares the file with an account in the writer role.
	GrantWriter(ctx context.Context, fileID, email string) error
}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Client implements Store against the Google Sheets and Drive APIs.
type Client struct {
	sheets   *sheets.Service
	drive    *drive.Service
	folderID string
}

// NewClient constructs a Client with credentials resolved from the
// environment: GOOGLE_APPLICATION_CREDENTIALS_JSON (inline JSON) or
// GOOGLE_APPLICATION_CREDENTIALS (file path), falling back to ADC.
func NewClient(ctx context.Context, folderID string) (*Client, error) {
	opts := clientOptionsFromEnv()

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{sheets: sheetsSvc, drive: driveSvc, folderID: folderID}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if creds != "" {
		return []option.ClientOption{option.WithCredentialsFile(creds)}
	}
	return nil
}

func (c *Client) GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", readRange, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) Append(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error {
	_, err := c.sheets.Spreadsheets.Values.
		Append(spreadsheetID, writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", writeRange, err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) error {
	_, err := c.sheets.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", writeRange, err)
	}
	return nil
}

func (c *Client) CreateSpreadsheet(ctx context.Context, title, initialTab string) (string, string, error) {
	file, err := c.drive.Files.Create(&drive.File{
		Name:     title,
		MimeType: spreadsheetMimeType,
		Parents:  []string{c.folderID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("create spreadsheet %q: %w", title, err)
	}

	// Drive creates the document with a default first tab; rename it so
	// range addressing by tab name works immediately.
	if initialTab != "" {
		_, err = c.sheets.Spreadsheets.BatchUpdate(file.Id, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{SheetId: 0, Title: initialTab},
					Fields:     "title",
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return "", "", fmt.Errorf("rename initial tab of %s: %w", file.Id, err)
		}
	}

	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", file.Id)
	return file.Id, url, nil
}

func (c *Client) AddTab(ctx context.Context, spreadsheetID, title string) error {
	_, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add tab %q to %s: %w", title, spreadsheetID, err)
	}
	return nil
}

func (c *Client) GrantWriter(ctx context.Context, fileID, email string) error {
	_, err := c.drive.Permissions.Create(fileID, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: email,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("share %s with %s: %w", fileID, email, err)
	}
	return nil
}
