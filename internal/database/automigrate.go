package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// migrationModels lists all domain models in dependency order
var migrationModels = []modelInfo{
	{&domain.User{}, "users"},
	{&domain.Kanban{}, "kanbans"},
	{&domain.KanbanMember{}, "kanban_members"},
	{&domain.Column{}, "columns"},
	{&domain.Card{}, "cards"},
	{&domain.CardAssignee{}, "card_assignees"},
	{&domain.ChecklistItem{}, "checklist_items"},
	{&domain.Label{}, "labels"},
	{&domain.Comment{}, "comments"},
	{&domain.Attachment{}, "attachments"},
	{&domain.Invitation{}, "invitations"},
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	models := make([]interface{}, 0, len(migrationModels))
	for _, m := range migrationModels {
		models = append(models, m.model)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate runs auto-migration model by model, logging table state along
// the way. Existing tables only receive schema updates; missing tables are
// created from scratch.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(migrationModels)),
	)

	for _, m := range migrationModels {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Debug("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed",
		zap.Int("tables_migrated", len(migrationModels)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
