package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/reorder"
)

func setupCardTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

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
	db.Exec(`CREATE TABLE card_assignees (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (card_id, user_id)
	)`)
	db.Exec(`CREATE TABLE labels (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		kanban_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL
	)`)
	db.Exec(`CREATE TABLE card_labels (
		card_id TEXT NOT NULL,
		label_id TEXT NOT NULL,
		PRIMARY KEY (card_id, label_id)
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

func newCard(columnID uuid.UUID, title string, position int) *domain.Card {
	return &domain.Card{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ColumnID:  columnID,
		AuthorID:  uuid.New(),
		Title:     title,
		Position:  position,
	}
}

func TestCardRepository_MaxPosition(t *testing.T) {
	db := setupCardTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	columnID := uuid.New()

	max, err := repo.MaxPosition(ctx, columnID)
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != -1 {
		t.Errorf("expected -1 for an empty column, got %d", max)
	}

	db.Create(newCard(columnID, "First", 0))
	db.Create(newCard(columnID, "Second", 1))
	db.Create(newCard(uuid.New(), "Other column", 7))

	max, err = repo.MaxPosition(ctx, columnID)
	if err != nil {
		t.Fatalf("MaxPosition() error = %v", err)
	}
	if max != 1 {
		t.Errorf("expected max position 1, got %d", max)
	}
}

func TestCardRepository_UpdatePlacements(t *testing.T) {
	db := setupCardTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	colA := uuid.New()
	colB := uuid.New()
	moved := newCard(colA, "Moved", 0)
	stays := newCard(colA, "Stays", 1)
	db.Create(moved)
	db.Create(stays)

	err := repo.UpdatePlacements(ctx, []reorder.Placement{
		{ID: moved.ID, ColumnID: colB, Position: 0},
		{ID: stays.ID, ColumnID: colA, Position: 0},
	})
	if err != nil {
		t.Fatalf("UpdatePlacements() error = %v", err)
	}

	var got domain.Card
	db.First(&got, moved.ID)
	if got.ColumnID != colB || got.Position != 0 {
		t.Errorf("expected moved card in column %v at 0, got (%v, %d)", colB, got.ColumnID, got.Position)
	}
	db.First(&got, stays.ID)
	if got.ColumnID != colA || got.Position != 0 {
		t.Errorf("expected staying card renumbered to 0, got (%v, %d)", got.ColumnID, got.Position)
	}

	if err := repo.UpdatePlacements(ctx, nil); err != nil {
		t.Errorf("UpdatePlacements() with no placements error = %v", err)
	}
}

func TestCardRepository_Assignees(t *testing.T) {
	db := setupCardTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	cardID := uuid.New()
	userID := uuid.New()

	assignee := &domain.CardAssignee{ID: uuid.New(), CardID: cardID, UserID: userID}
	if err := repo.AddAssignee(ctx, assignee); err != nil {
		t.Fatalf("AddAssignee() error = %v", err)
	}

	got, err := repo.FindAssignee(ctx, cardID, userID)
	if err != nil {
		t.Fatalf("FindAssignee() error = %v", err)
	}
	if got.UserID != userID {
		t.Errorf("expected assignee %v, got %v", userID, got.UserID)
	}

	if err := repo.RemoveAssignee(ctx, cardID, userID); err != nil {
		t.Fatalf("RemoveAssignee() error = %v", err)
	}

	// Removing again must surface not found
	if err := repo.RemoveAssignee(ctx, cardID, userID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCardRepository_Labels(t *testing.T) {
	db := setupCardTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	card := newCard(uuid.New(), "Task", 0)
	db.Create(card)
	label := &domain.Label{BaseModel: domain.BaseModel{ID: uuid.New()}, KanbanID: uuid.New(), Name: "bug", Color: "#d73a4a"}
	db.Create(label)

	has, err := repo.HasLabel(ctx, card.ID, label.ID)
	if err != nil {
		t.Fatalf("HasLabel() error = %v", err)
	}
	if has {
		t.Error("expected no label link before attach")
	}

	if err := repo.AttachLabel(ctx, card.ID, label.ID); err != nil {
		t.Fatalf("AttachLabel() error = %v", err)
	}
	has, err = repo.HasLabel(ctx, card.ID, label.ID)
	if err != nil {
		t.Fatalf("HasLabel() error = %v", err)
	}
	if !has {
		t.Error("expected label link after attach")
	}

	if err := repo.DetachLabel(ctx, card.ID, label.ID); err != nil {
		t.Fatalf("DetachLabel() error = %v", err)
	}
	has, _ = repo.HasLabel(ctx, card.ID, label.ID)
	if has {
		t.Error("expected no label link after detach")
	}
}

func TestCardRepository_Delete_RemovesChildren(t *testing.T) {
	db := setupCardTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	card := newCard(uuid.New(), "Doomed", 0)
	db.Create(card)
	db.Create(&domain.ChecklistItem{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: card.ID, Text: "step"})
	comment := &domain.Comment{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: card.ID, UserID: uuid.New(), Content: "note"}
	db.Create(comment)
	db.Create(&domain.CardAssignee{ID: uuid.New(), CardID: card.ID, UserID: uuid.New()})
	db.Exec("INSERT INTO card_labels (card_id, label_id) VALUES (?, ?)", card.ID, uuid.New())
	db.Create(&domain.Attachment{
		BaseModel: domain.BaseModel{ID: uuid.New()}, EntityType: domain.EntityTypeComment, EntityID: &comment.ID,
		Status: domain.AttachmentStatusConfirmed, FileName: "f.png", FileKey: "k", FileSize: 1, ContentType: "image/png", UploadedBy: uuid.New(),
	})

	survivor := newCard(uuid.New(), "Survivor", 0)
	db.Create(survivor)
	db.Create(&domain.ChecklistItem{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: survivor.ID, Text: "keep"})

	if err := repo.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	counts := map[string]int64{}
	for _, table := range []string{"cards", "checklist_items", "comments", "card_assignees", "card_labels", "attachments"} {
		var count int64
		db.Table(table).Count(&count)
		counts[table] = count
	}
	if counts["cards"] != 1 || counts["checklist_items"] != 1 {
		t.Errorf("expected only the survivor card and item, got %v", counts)
	}
	if counts["comments"] != 0 || counts["card_assignees"] != 0 || counts["card_labels"] != 0 || counts["attachments"] != 0 {
		t.Errorf("expected card children removed, got %v", counts)
	}
}
