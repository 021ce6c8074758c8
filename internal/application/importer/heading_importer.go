package importer

import (
	"context"
	"fmt"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
)

// HeadingImporter upserts headings keyed by their unique code,
// resolving the parent season by its code
type HeadingImporter struct{}

// NewHeadingImporter creates a heading importer
func NewHeadingImporter() *HeadingImporter {
	return &HeadingImporter{}
}

// Model returns the model name reported to clients
func (i *HeadingImporter) Model() string {
	return "Heading"
}

// RequiredColumns returns the headers the upload must contain
func (i *HeadingImporter) RequiredColumns() []string {
	return []string{"code", "season_code"}
}

// ProcessRows upserts one heading per row. Rows with a blank code or
// season code are skipped; an unknown season code is a row error.
func (i *HeadingImporter) ProcessRows(ctx context.Context, repos TransactionalRepositories, rows []tabular.Row, report *Report) error {
	headings := repos.Headings()

	// Cache seasons by code to avoid a query per row
	seasonMap, err := repos.Seasons().CodeMap(ctx)
	if err != nil {
		return err
	}

	runRows(ctx, rows, func(ctx context.Context, rowNum int, row tabular.Row) {
		code := tabular.CleanString(row.Get("code"))
		seasonCode := tabular.CleanString(row.Get("season_code"))
		if code == "" || seasonCode == "" {
			report.Skipped++
			return
		}

		season, ok := seasonMap[seasonCode]
		if !ok {
			report.AddRowError(rowNum, code, fmt.Sprintf("season_code '%s' not found", seasonCode))
			return
		}

		description := tabular.CleanString(row.Get("description"))
		notes := tabular.CleanString(row.Get("heading_notes"))

		upsertByCode(ctx, report, rowNum, code,
			headings.FindByCode,
			headings.Save,
			func(existing *catalog.Heading) {
				existing.Update(season.ID, description, notes)
			},
			func() (*catalog.Heading, error) {
				return catalog.NewHeading(code, season.ID, description, notes)
			},
		)
	})

	return nil
}

var _ Importer = (*HeadingImporter)(nil)
