package importer

import (
	"context"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
)

// SeasonImporter upserts seasons keyed by their unique code
type SeasonImporter struct{}

// NewSeasonImporter creates a season importer
func NewSeasonImporter() *SeasonImporter {
	return &SeasonImporter{}
}

// Model returns the model name reported to clients
func (i *SeasonImporter) Model() string {
	return "Season"
}

// RequiredColumns returns the headers the upload must contain
func (i *SeasonImporter) RequiredColumns() []string {
	return []string{"code"}
}

// ProcessRows upserts one season per row. Rows with a blank code are
// skipped.
func (i *SeasonImporter) ProcessRows(ctx context.Context, repos TransactionalRepositories, rows []tabular.Row, report *Report) error {
	seasons := repos.Seasons()

	runRows(ctx, rows, func(ctx context.Context, rowNum int, row tabular.Row) {
		code := tabular.CleanString(row.Get("code"))
		if code == "" {
			report.Skipped++
			return
		}

		description := tabular.CleanString(row.Get("description"))
		notes := tabular.CleanString(row.Get("season_notes"))

		upsertByCode(ctx, report, rowNum, code,
			seasons.FindByCode,
			seasons.Save,
			func(existing *catalog.Season) {
				existing.Update(description, notes)
			},
			func() (*catalog.Season, error) {
				return catalog.NewSeason(code, description, notes)
			},
		)
	})

	return nil
}

var _ Importer = (*SeasonImporter)(nil)
