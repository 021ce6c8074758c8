package persistence

import (
	"context"

	"github.com/tradegate/backend/internal/application/importer"
	"github.com/tradegate/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormTransactionScope implements importer.TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GORM transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

var _ importer.TransactionScope = (*GormTransactionScope)(nil)

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos importer.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxRepositories(tx))
	})
}

// txRepositories bundles repositories bound to a single transaction
type txRepositories struct {
	seasonRepo  catalog.SeasonRepository
	headingRepo catalog.HeadingRepository
	hsCodeRepo  catalog.HSCodeRepository
}

func newTxRepositories(tx *gorm.DB) *txRepositories {
	return &txRepositories{
		seasonRepo:  NewGormSeasonRepository(tx),
		headingRepo: NewGormHeadingRepository(tx),
		hsCodeRepo:  NewGormHSCodeRepository(tx),
	}
}

var _ importer.TransactionalRepositories = (*txRepositories)(nil)

// Seasons returns the season repository scoped to the transaction
func (r *txRepositories) Seasons() catalog.SeasonRepository {
	return r.seasonRepo
}

// Headings returns the heading repository scoped to the transaction
func (r *txRepositories) Headings() catalog.HeadingRepository {
	return r.headingRepo
}

// HSCodes returns the HS code repository scoped to the transaction
func (r *txRepositories) HSCodes() catalog.HSCodeRepository {
	return r.hsCodeRepo
}
