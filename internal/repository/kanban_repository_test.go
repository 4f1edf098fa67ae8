package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

func setupKanbanTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE kanbans (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		settings TEXT
	)`)
	db.Exec(`CREATE TABLE kanban_members (
		id TEXT PRIMARY KEY,
		kanban_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'COLLABORATOR',
		joined_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (kanban_id, user_id)
	)`)
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
	db.Exec(`CREATE TABLE card_assignees (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		assigned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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
	db.Exec(`CREATE TABLE invitations (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		kanban_id TEXT NOT NULL,
		email TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'COLLABORATOR',
		invited_by TEXT NOT NULL,
		used INTEGER NOT NULL DEFAULT 0,
		used_at DATETIME
	)`)

	return db
}

func newKanban(ownerID uuid.UUID, name string) *domain.Kanban {
	return &domain.Kanban{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		OwnerID:   ownerID,
		Name:      name,
	}
}

func TestKanbanRepository_FindAccessibleByUser(t *testing.T) {
	db := setupKanbanTestDB(t)
	repo := NewKanbanRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	owned := newKanban(userID, "Owned")
	db.Create(owned)

	shared := newKanban(uuid.New(), "Shared")
	db.Create(shared)
	db.Create(&domain.KanbanMember{ID: uuid.New(), KanbanID: shared.ID, UserID: userID, Role: domain.RoleCollaborator, JoinedAt: time.Now()})

	// Owned and member of: must not come back twice
	ownedAndJoined := newKanban(userID, "Both")
	db.Create(ownedAndJoined)
	db.Create(&domain.KanbanMember{ID: uuid.New(), KanbanID: ownedAndJoined.ID, UserID: userID, Role: domain.RoleAdmin, JoinedAt: time.Now()})

	db.Create(newKanban(uuid.New(), "Unrelated"))

	got, err := repo.FindAccessibleByUser(ctx, userID)
	if err != nil {
		t.Fatalf("FindAccessibleByUser() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 accessible kanbans, got %d", len(got))
	}

	names := map[string]bool{}
	for _, kanban := range got {
		names[kanban.Name] = true
	}
	if !names["Owned"] || !names["Shared"] || !names["Both"] {
		t.Errorf("unexpected kanbans %v", names)
	}
}

func TestKanbanRepository_Members(t *testing.T) {
	db := setupKanbanTestDB(t)
	repo := NewKanbanRepository(db)
	ctx := context.Background()

	kanbanID := uuid.New()
	userID := uuid.New()

	member := &domain.KanbanMember{ID: uuid.New(), KanbanID: kanbanID, UserID: userID, Role: domain.RoleCollaborator, JoinedAt: time.Now()}
	if err := repo.AddMember(ctx, member); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	got, err := repo.FindMember(ctx, kanbanID, userID)
	if err != nil {
		t.Fatalf("FindMember() error = %v", err)
	}
	if got.Role != domain.RoleCollaborator {
		t.Errorf("expected COLLABORATOR role, got %v", got.Role)
	}

	if err := repo.RemoveMember(ctx, kanbanID, userID); err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if err := repo.RemoveMember(ctx, kanbanID, userID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on a second remove, got %v", err)
	}
	if _, err := repo.FindMember(ctx, kanbanID, userID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound after removal, got %v", err)
	}
}

func TestKanbanRepository_Delete_CascadesEverything(t *testing.T) {
	db := setupKanbanTestDB(t)
	repo := NewKanbanRepository(db)
	ctx := context.Background()

	kanban := newKanban(uuid.New(), "Doomed")
	db.Create(kanban)

	column := newColumn(kanban.ID, "Todo", 0)
	db.Create(column)
	card := newCard(column.ID, "Task", 0)
	db.Create(card)
	comment := &domain.Comment{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: card.ID, UserID: uuid.New(), Content: "note"}
	db.Create(comment)
	db.Create(&domain.ChecklistItem{BaseModel: domain.BaseModel{ID: uuid.New()}, CardID: card.ID, Text: "step"})
	db.Create(&domain.CardAssignee{ID: uuid.New(), CardID: card.ID, UserID: uuid.New()})
	label := &domain.Label{BaseModel: domain.BaseModel{ID: uuid.New()}, KanbanID: kanban.ID, Name: "bug", Color: "#d73a4a"}
	db.Create(label)
	db.Exec("INSERT INTO card_labels (card_id, label_id) VALUES (?, ?)", card.ID, label.ID)
	db.Create(&domain.KanbanMember{ID: uuid.New(), KanbanID: kanban.ID, UserID: uuid.New(), Role: domain.RoleCollaborator, JoinedAt: time.Now()})
	db.Create(newInvitation(kanban.ID, "pending@example.com", "token-doomed"))
	db.Create(&domain.Attachment{
		BaseModel: domain.BaseModel{ID: uuid.New()}, EntityType: domain.EntityTypeCard, EntityID: &card.ID,
		Status: domain.AttachmentStatusConfirmed, FileName: "f.png", FileKey: "k", FileSize: 1, ContentType: "image/png", UploadedBy: uuid.New(),
	})

	survivor := newKanban(uuid.New(), "Survivor")
	db.Create(survivor)
	db.Create(newColumn(survivor.ID, "Keep", 0))

	if err := repo.Delete(ctx, kanban.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	expectCounts := map[string]int64{
		"kanbans":         1,
		"columns":         1,
		"cards":           0,
		"comments":        0,
		"checklist_items": 0,
		"card_assignees":  0,
		"labels":          0,
		"card_labels":     0,
		"kanban_members":  0,
		"invitations":     0,
		"attachments":     0,
	}
	for table, want := range expectCounts {
		var count int64
		db.Table(table).Count(&count)
		if count != want {
			t.Errorf("table %s: expected %d rows, got %d", table, want, count)
		}
	}

	if _, err := repo.FindByID(ctx, kanban.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound after delete, got %v", err)
	}
}
