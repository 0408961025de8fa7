package rowstore

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Google talks to one Google spreadsheet through the Sheets values API.
type Google struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewGoogle(ctx context.Context, credentialsPath, spreadsheetID string) (*Google, error) {
	service, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	logrus.Info("google sheets client initialized")
	return &Google{service: service, spreadsheetID: spreadsheetID}, nil
}

func (g *Google) ReadHeader(ctx context.Context, sheet string) ([]string, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, rowRange(sheet, 1)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("read_header", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

func (g *Google) WriteHeader(ctx context.Context, sheet string, columns []string) error {
	return g.WriteRow(ctx, sheet, 1, columns)
}

func (g *Google) FindRowByValue(ctx context.Context, sheet string, column int, value string) (int, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, columnRange(sheet, column)).
		Context(ctx).
		Do()
	if err != nil {
		return 0, classify("find_row", err)
	}
	for i, row := range resp.Values {
		if len(row) > 0 && toString(row[0]) == value {
			return i + 1, nil
		}
	}
	return 0, notFound("find_row")
}

func (g *Google) ReadRow(ctx context.Context, sheet string, row int) ([]string, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, rowRange(sheet, row)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("read_row", err)
	}
	if len(resp.Values) == 0 {
		return nil, notFound("read_row")
	}
	return toStrings(resp.Values[0]), nil
}

func (g *Google) ReadAllRows(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := g.service.Spreadsheets.Values.
		Get(g.spreadsheetID, quoteSheet(sheet)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify("read_all", err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rows = append(rows, toStrings(row))
	}
	return rows, nil
}

func (g *Google) AppendRow(ctx context.Context, sheet string, values []string) error {
	_, err := g.service.Spreadsheets.Values.
		Append(g.spreadsheetID, quoteSheet(sheet), valueRange("", values)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return classify("append_row", err)
	}
	return nil
}

func (g *Google) WriteRow(ctx context.Context, sheet string, row int, values []string) error {
	_, err := g.service.Spreadsheets.Values.
		Update(g.spreadsheetID, rowRange(sheet, row), valueRange("", values)).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("write_row", err)
	}
	return nil
}

func (g *Google) BatchWrite(ctx context.Context, sheet string, updates []RowUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, valueRange(rowRange(sheet, u.Row), u.Values))
	}
	_, err := g.service.Spreadsheets.Values.
		BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             data,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return classify("batch_write", err)
	}
	return nil
}

func valueRange(rng string, values []string) *sheets.ValueRange {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &sheets.ValueRange{Range: rng, Values: [][]interface{}{cells}}
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = toString(v)
	}
	return out
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func quoteSheet(sheet string) string {
	return "'" + sheet + "'"
}

func rowRange(sheet string, row int) string {
	return fmt.Sprintf("%s!%d:%d", quoteSheet(sheet), row, row)
}

func columnRange(sheet string, column int) string {
	letter := columnLetter(column)
	return fmt.Sprintf("%s!%s:%s", quoteSheet(sheet), letter, letter)
}

// columnLetter converts a 1-based column index to its A1 letter.
func columnLetter(column int) string {
	letters := ""
	for column > 0 {
		column--
		letters = string(rune('A'+column%26)) + letters
		column /= 26
	}
	return letters
}

// classify maps Sheets API failures onto the adapter taxonomy: HTTP-level
// and network errors are transport (retryable later), anything else is
// unknown.
func classify(op string, err error) *Error {
	kind := KindUnknown
	var apiErr *googleapi.Error
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		kind = KindTransport
	case errors.As(err, &netErr):
		kind = KindTransport
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindTransport
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
