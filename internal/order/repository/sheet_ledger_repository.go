package repository

import (
	"context"
	"fmt"
	"time"

	"knox-bundles/internal/domain"
	"knox-bundles/internal/errors"
)

// Ledger columns, in sheet order. Positions are load-bearing: every row is
// written with all seven cells so downstream reads can index by column.
const (
	colSubmittedAt = iota
	colReference
	colName
	colContact
	colBundle
	colPrice
	colStatus
	columnCount
)

// RowHandle identifies a located ledger row by its 1-based sheet row number.
type RowHandle int

// ValuesAPI is the slice of the Google Sheets values surface the ledger needs.
// internal/infrastructure/sheets provides the real implementation.
type ValuesAPI interface {
	Append(ctx context.Context, rng string, rows [][]interface{}) error
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Update(ctx context.Context, rng string, rows [][]interface{}) error
}

type SheetLedgerRepository struct {
	values ValuesAPI
	sheet  string
}

func NewSheetLedgerRepository(values ValuesAPI, sheet string) *SheetLedgerRepository {
	return &SheetLedgerRepository{
		values: values,
		sheet:  sheet,
	}
}

// Append stamps the order with the submission time and a fresh reference and
// writes it as a new row. The returned order carries both generated fields.
func (r *SheetLedgerRepository) Append(ctx context.Context, order domain.Order) (domain.Order, error) {
	order.SubmittedAt = time.Now().UTC()
	order.Reference = NewReference(order.SubmittedAt)

	if err := r.values.Append(ctx, r.rowRange(), [][]interface{}{orderToRow(order)}); err != nil {
		return domain.Order{}, errors.NewStoreError("appending order row", err)
	}

	return order, nil
}

// ListRecent returns the last n rows of the ledger, oldest of the window
// first. An empty ledger yields an empty slice, not an error.
func (r *SheetLedgerRepository) ListRecent(ctx context.Context, n int) ([]domain.Order, error) {
	rows, err := r.values.Get(ctx, r.rowRange())
	if err != nil {
		return nil, errors.NewStoreError("reading ledger rows", err)
	}

	if len(rows) > n {
		rows = rows[len(rows)-n:]
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, rowToOrder(row))
	}

	return orders, nil
}

// FindByReference scans the reference column for an exact match.
func (r *SheetLedgerRepository) FindByReference(ctx context.Context, ref string) (RowHandle, domain.Order, error) {
	rows, err := r.values.Get(ctx, r.rowRange())
	if err != nil {
		return 0, domain.Order{}, errors.NewStoreError("reading ledger rows", err)
	}

	for i, row := range rows {
		if cellString(row, colReference) == ref {
			return RowHandle(i + 1), rowToOrder(row), nil
		}
	}

	return 0, domain.Order{}, errors.NewNotFoundError(fmt.Sprintf("order %s not found", ref))
}

// SetStatus overwrites the status cell of the located row and nothing else.
func (r *SheetLedgerRepository) SetStatus(ctx context.Context, handle RowHandle, status domain.Status) error {
	rng := fmt.Sprintf("%s!G%d", r.sheet, handle)
	if err := r.values.Update(ctx, rng, [][]interface{}{{string(status)}}); err != nil {
		return errors.NewStoreError("updating order status", err)
	}
	return nil
}

func (r *SheetLedgerRepository) rowRange() string {
	return fmt.Sprintf("%s!A:G", r.sheet)
}

func orderToRow(order domain.Order) []interface{} {
	return []interface{}{
		order.SubmittedAt.Format(time.RFC3339),
		order.Reference,
		order.Name,
		order.Contact,
		order.Bundle,
		order.Price,
		string(order.Status),
	}
}

func rowToOrder(row []interface{}) domain.Order {
	submittedAt, _ := time.Parse(time.RFC3339, cellString(row, colSubmittedAt))
	return domain.Order{
		SubmittedAt: submittedAt,
		Reference:   cellString(row, colReference),
		Name:        cellString(row, colName),
		Contact:     cellString(row, colContact),
		Bundle:      cellString(row, colBundle),
		Price:       cellString(row, colPrice),
		Status:      domain.Status(cellString(row, colStatus)),
	}
}

// cellString tolerates short rows and non-string cells; the sheet is editable
// by hand and rows older than the current schema may be narrower.
func cellString(row []interface{}, col int) string {
	if col >= len(row) || row[col] == nil {
		return ""
	}
	if s, ok := row[col].(string); ok {
		return s
	}
	return fmt.Sprint(row[col])
}
