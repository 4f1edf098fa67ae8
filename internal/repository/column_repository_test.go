package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

func setupColumnTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE columns (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		kanban_id TEXT NOT NULL,
		title TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE cards (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		column_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		due_date DATETIME
	)`)
	db.Exec(`CREATE TABLE checklist_items (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		card_id TEXT NOT NULL,
		text TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0
	)`)
	db.Exec(`CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		card_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL
	)`)
	db.Exec(`CREATE TABLE card_assignees (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	db.Exec(`CREATE TABLE card_labels (
		card_id TEXT NOT NULL,
		label_id TEXT NOT NULL,
		PRIMARY KEY (card_id, label_id)
	)`)
	db.Exec(`CREATE TABLE attachments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		status TEXT NOT NULL DEFAULT 'TEMP',
		file_name TEXT NOT NULL,
		file_key TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		expires_at DATETIME
	)`)

	return db
}

func newColumn(kanbanID uuid.UUID, title string, position int) *domain.Column {
	return &domain.Column{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		KanbanID:  kanbanID,
		Title:     title,
		Position:  position,
	}
}

func TestColumnRepository_MaxPosition(t *testing.T) {
	db := setupColumnTestDB(t)
	repo := NewColumnRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()

	max, err := repo.MaxPosition(ctx, kanbanID)
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != -1 {
		t.Errorf("expected -1 for a kanban without columns, got %d", max)
	}

	db.Create(newColumn(kanbanID, "Todo", 0))
	db.Create(newColumn(kanbanID, "Done", 1))

	max, err = repo.MaxPosition(ctx, kanbanID)
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != 1 {
		t.Errorf("expected max position 1, got %d", max)
	}
}

func TestColumnRepository_FindByKanbanID_Ordered(t *testing.T) {
	db := setupColumnTestDB(t)
	repo := NewColumnRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	db.Create(newColumn(kanbanID, "Done", 2))
	db.Create(newColumn(kanbanID, "Todo", 0))
	db.Create(newColumn(kanbanID, "Doing", 1))
	db.Create(newColumn(uuid.New(), "Foreign", 0))

	got, err := repo.FindByKanbanID(ctx, kanbanID)
	if err != nil {
		t.Fatalf("FindByKanbanID() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(got))
	}
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	if titles[0] != "Todo" || titles[1] != "Doing" || titles[2] != "Done" {
		t.Errorf("expected position order [Todo Doing Done], got %v", titles)
	}
}

func TestColumnRepository_UpdatePositions(t *testing.T) {
	db := setupColumnTestDB(t)
	repo := NewColumnRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	first := newColumn(kanbanID, "Todo", 0)
	second := newColumn(kanbanID, "Done", 1)
	db.Create(first)
	db.Create(second)

	err := repo.UpdatePositions(ctx, map[uuid.UUID]int{
		first.ID:  1,
		second.ID: 0,
	})
	if err != nil {
		t.Fatalf("UpdatePositions() error = %v", err)
	}

	got, err := repo.FindByKanbanID(ctx, kanbanID)
	if err != nil {
		t.Fatalf("FindByKanbanID() error = %v", err)
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("expected swapped order, got [%v %v]", got[0].Title, got[1].Title)
	}
}

func TestColumnRepository_Delete_RemovesCards(t *testing.T) {
	db := setupColumnTestDB(t)
	repo := NewColumnRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	doomed := newColumn(kanbanID, "Doomed", 0)
	kept := newColumn(kanbanID, "Kept", 1)
	db.Create(doomed)
	db.Create(kept)

	doomedCard := newCard(doomed.ID, "Task", 0)
	db.Create(doomedCard)
	db.Create(&domain.Comment{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: doomedCard.ID, UserID: uuid.New(), Content: "note"})
	db.Create(newCard(kept.ID, "Safe task", 0))

	if err := repo.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var columnCount, cardCount, commentCount int64
	db.Model(&domain.Column{}).Count(&columnCount)
	db.Model(&domain.Card{}).Count(&cardCount)
	db.Model(&domain.Comment{}).Count(&commentCount)
	if columnCount != 1 || cardCount != 1 || commentCount != 0 {
		t.Errorf("expected (1 column, 1 card, 0 comments), got (%d, %d, %d)", columnCount, cardCount, commentCount)
	}
}
