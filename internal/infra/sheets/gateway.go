// Package sheets implements the spreadsheet gateway on the Google Sheets v4 API.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

const (
	valueInputRaw        = "RAW"
	tabFields            = "sheets.properties(sheetId,title)"
	backgroundColorField = "userEnteredFormat.backgroundColor"
)

var gridRangeFields = []string{"SheetId", "StartRowIndex", "EndRowIndex", "StartColumnIndex", "EndColumnIndex"}

type Gateway struct {
	service *sheetsapi.Service
}

// NewGateway authenticates with the service-account file at credentialsFile, or with
// application default credentials when it is empty. Extra options are appended.
func NewGateway(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*Gateway, error) {
	clientOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "spreadsheet gateway initialized",
		slog.String("type", "google_sheets"),
		slog.Bool("credentials_file", credentialsFile != ""),
	)

	return &Gateway{service: service}, nil
}

func (g *Gateway) GetTabs(ctx context.Context, spreadsheetID string) ([]domain.TabMeta, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(spreadsheetID).
		Fields(tabFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	tabs := make([]domain.TabMeta, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		tabs = append(tabs, domain.TabMeta{
			Title:   sheet.Properties.Title,
			SheetID: sheet.Properties.SheetId,
		})
	}

	return tabs, nil
}

// ReadRange returns the formatted cell values of a range as strings. Trailing empty
// cells and rows are absent, as the API omits them.
func (g *Gateway) ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a1Range, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func (g *Gateway) BatchWriteValues(ctx context.Context, spreadsheetID string, ranges []domain.ValueRange) error {
	data := make([]*sheetsapi.ValueRange, 0, len(ranges))
	for _, r := range ranges {
		values := make([][]any, len(r.Values))
		for i, row := range r.Values {
			values[i] = make([]any, len(row))
			for j, v := range row {
				values[i][j] = v
			}
		}
		data = append(data, &sheetsapi.ValueRange{
			Range:  r.Range,
			Values: values,
		})
	}

	_, err := g.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: valueInputRaw,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %d ranges: %w", len(ranges), err)
	}

	return nil
}

func (g *Gateway) BatchWriteFormat(ctx context.Context, spreadsheetID string, requests []domain.FormatRequest) error {
	apiRequests := make([]*sheetsapi.Request, 0, len(requests))
	for _, r := range requests {
		apiRequests = append(apiRequests, &sheetsapi.Request{
			RepeatCell: repeatCell(r),
		})
	}

	_, err := g.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: apiRequests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply %d format requests: %w", len(requests), err)
	}

	return nil
}

// repeatCell sets the background of a range. A nil background clears it.
func repeatCell(r domain.FormatRequest) *sheetsapi.RepeatCellRequest {
	cell := &sheetsapi.CellData{}
	if r.Background != nil {
		cell.UserEnteredFormat = &sheetsapi.CellFormat{
			BackgroundColor: &sheetsapi.Color{
				Red:             r.Background.Red,
				Green:           r.Background.Green,
				Blue:            r.Background.Blue,
				ForceSendFields: []string{"Red", "Green", "Blue"},
			},
		}
	}

	return &sheetsapi.RepeatCellRequest{
		Range: &sheetsapi.GridRange{
			SheetId:          r.Range.SheetID,
			StartRowIndex:    r.Range.StartRowIndex,
			EndRowIndex:      r.Range.EndRowIndex,
			StartColumnIndex: r.Range.StartColumnIndex,
			EndColumnIndex:   r.Range.EndColumnIndex,
			ForceSendFields:  gridRangeFields,
		},
		Cell:   cell,
		Fields: backgroundColorField,
	}
}
