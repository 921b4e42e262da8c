package postgres

import (
	"gorm.io/gorm"

	"mealmarket/internal/adapters/out/postgres/assignmentrepo"
	"mealmarket/internal/adapters/out/postgres/chefrepo"
	"mealmarket/internal/adapters/out/postgres/driverrepo"
	"mealmarket/internal/adapters/out/postgres/ledgerrepo"
	"mealmarket/internal/adapters/out/postgres/orderrepo"
	"mealmarket/internal/adapters/out/postgres/outboxrepo"
)

// AutoMigrate creates or updates every table the adapters persist to.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&chefrepo.ChefDTO{},
		&chefrepo.MenuItemDTO{},
		&driverrepo.DriverDTO{},
		&assignmentrepo.AssignmentDTO{},
		&ledgerrepo.EntryDTO{},
		&outboxrepo.MessageDTO{},
	)
}
