package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradegate/backend/internal/infrastructure/tabular"
	"go.uber.org/zap"
)

// errDryRunRollback forces the surrounding transaction to roll back
// after a dry run has processed every row.
var errDryRunRollback = errors.New("dry run rollback")

// MissingColumnsError is returned when an upload lacks required columns
type MissingColumnsError struct {
	Missing  []string
	Received []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Missing)
}

// Importer processes the rows of one upload for a specific model
type Importer interface {
	// Model returns the model name reported to clients
	Model() string
	// RequiredColumns returns the normalized headers the upload must contain
	RequiredColumns() []string
	// ProcessRows validates and upserts every row, recording the outcome
	ProcessRows(ctx context.Context, repos TransactionalRepositories, rows []tabular.Row, report *Report) error
}

// Service runs bulk imports inside a single database transaction
type Service struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a new import service
func NewService(scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		scope:  scope,
		logger: logger,
	}
}

// Run parses the uploaded file and processes it with the given importer.
// The whole run happens in one transaction; a dry run processes every row
// and then rolls the transaction back, so the report reflects what a real
// run would have done.
func (s *Service) Run(ctx context.Context, imp Importer, filename string, data []byte, dryRun bool) (*Report, error) {
	table, err := tabular.ReadFromBytes(filename, data)
	if err != nil {
		return nil, err
	}

	if missing := table.MissingHeaders(imp.RequiredColumns()); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Received: table.Headers}
	}

	report := NewReport(imp.Model(), dryRun, len(table.Rows))

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := imp.ProcessRows(ctx, repos, table.Rows, report); err != nil {
			return err
		}
		if dryRun {
			return errDryRunRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}

	s.logger.Info("import finished",
		zap.String("model", imp.Model()),
		zap.Bool("dry_run", dryRun),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
	)

	return report, nil
}
