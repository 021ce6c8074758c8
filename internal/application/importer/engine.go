package importer

import (
	"context"
	"errors"

	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
)

// runRows drives the shared import loop. Rows are numbered from 2 to
// match their position in the source file, where the header is row 1.
// A failed row never aborts the run; fn records it on the report and
// the loop continues.
func runRows(ctx context.Context, rows []tabular.Row, fn func(ctx context.Context, rowNum int, row tabular.Row)) {
	for idx, row := range rows {
		fn(ctx, idx+2, row)
	}
}

// upsertByCode classifies a row keyed by a unique code: when the code
// is already stored the entity is revised and saved as an update,
// otherwise build produces a new one. The outcome is tallied on the
// report; failures are recorded against the row.
func upsertByCode[T any](
	ctx context.Context,
	report *Report,
	rowNum int,
	code string,
	find func(context.Context, string) (T, error),
	save func(context.Context, T) error,
	revise func(existing T),
	build func() (T, error),
) {
	existing, err := find(ctx, code)
	switch {
	case err == nil:
		revise(existing)
		if err := save(ctx, existing); err != nil {
			report.AddRowError(rowNum, code, err.Error())
			return
		}
		report.Updated++
	case errors.Is(err, shared.ErrNotFound):
		entity, err := build()
		if err != nil {
			report.AddRowError(rowNum, code, err.Error())
			return
		}
		if err := save(ctx, entity); err != nil {
			report.AddRowError(rowNum, code, err.Error())
			return
		}
		report.Created++
	default:
		report.AddRowError(rowNum, code, err.Error())
	}
}
