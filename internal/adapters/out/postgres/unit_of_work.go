// Package postgres provides the GORM-based Unit of Work and repositories for
// the marketplace core. A unit of work wraps one database transaction; every
// repository it hands out runs against that transaction, so a lifecycle
// transition, its history rows, its ledger entries, and its outbox messages
// commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op, which makes the deferred
// rollback above safe on every path.
package postgres

import (
	"context"

	"mealmarket/internal/adapters/out/postgres/assignmentrepo"
	"mealmarket/internal/adapters/out/postgres/chefrepo"
	"mealmarket/internal/adapters/out/postgres/driverrepo"
	"mealmarket/internal/adapters/out/postgres/ledgerrepo"
	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/adapters/out/postgres/outboxrepo"
	"mealmarket/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance so
// concurrent operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready to begin a transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction. The zero
// transaction state is idle; Begin opens the transaction and Commit or
// Rollback closes it. Repositories obtained before Begin run on the bare
// connection, which the read-only query paths rely on.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling Begin on an already-open unit of work
// is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	return nil
}

// Commit makes all changes since Begin permanent and closes the transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes since Begin. On an idle unit of work it
// returns nil, so it can be deferred unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current
// transaction if one is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// ChefRepository returns a chef repository bound to the current transaction
// if one is open.
func (uow *GormUnitOfWork) ChefRepository() ports.ChefRepository {
	return chefrepo.NewGormChefRepository(uow.conn())
}

// DriverRepository returns a driver repository bound to the current
// transaction if one is open.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

// AssignmentRepository returns an assignment repository bound to the current
// transaction if one is open.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

// LedgerRepository returns a ledger repository bound to the current
// transaction if one is open.
func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn())
}

// OutboxRepository returns an outbox repository bound to the current
// transaction if one is open.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}
