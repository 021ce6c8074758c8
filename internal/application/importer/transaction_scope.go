package importer

import (
	"context"

	"github.com/tradegate/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalogue repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the catalogue repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Seasons returns the season repository scoped to the current transaction
	Seasons() catalog.SeasonRepository
	// Headings returns the heading repository scoped to the current transaction
	Headings() catalog.HeadingRepository
	// HSCodes returns the HS code repository scoped to the current transaction
	HSCodes() catalog.HSCodeRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	seasonRepo  catalog.SeasonRepository
	headingRepo catalog.HeadingRepository
	hsCodeRepo  catalog.HSCodeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	seasonRepo catalog.SeasonRepository,
	headingRepo catalog.HeadingRepository,
	hsCodeRepo catalog.HSCodeRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		seasonRepo:  seasonRepo,
		headingRepo: headingRepo,
		hsCodeRepo:  hsCodeRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Seasons returns the season repository.
func (s *NoOpTransactionScope) Seasons() catalog.SeasonRepository {
	return s.seasonRepo
}

// Headings returns the heading repository.
func (s *NoOpTransactionScope) Headings() catalog.HeadingRepository {
	return s.headingRepo
}

// HSCodes returns the HS code repository.
func (s *NoOpTransactionScope) HSCodes() catalog.HSCodeRepository {
	return s.hsCodeRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
