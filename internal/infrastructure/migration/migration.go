package migration

import (
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"stagecast/internal/infrastructure/persistence/models"
	"stagecast/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager with the strategy implied by
// the environment: schema sync from models in development, versioned SQL
// scripts everywhere else.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "development":
		strategy = NewGormAutoMigrateStrategy()
	default:
		scriptsPath, _ := filepath.Abs("./migrations")
		strategy = NewGooseStrategy(scriptsPath)
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())
	return m.strategy.Migrate(db, AutoMigrateModels()...)
}

// AutoMigrateModels returns every persistence model known to the schema.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.OAuthStateModel{},
		&models.RefreshTokenModel{},
		&models.ExchangeCodeModel{},
		&models.StageModel{},
		&models.InviteModel{},
		&models.ChatMessageModel{},
	}
}
