package service

import (
	"encoding/json"

	"github.com/google/uuid"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
)

func toKanbanResponse(kanban *domain.Kanban) dto.KanbanResponse {
	var settings map[string]interface{}
	if len(kanban.Settings) > 0 {
		// Settings is stored as a JSON document; unmarshal failures leave it nil
		_ = json.Unmarshal(kanban.Settings, &settings)
	}
	return dto.KanbanResponse{
		KanbanID:    kanban.ID,
		OwnerID:     kanban.OwnerID,
		Name:        kanban.Name,
		Description: kanban.Description,
		Settings:    settings,
		CreatedAt:   kanban.CreatedAt,
		UpdatedAt:   kanban.UpdatedAt,
	}
}

func toColumnResponse(column *domain.Column) dto.ColumnResponse {
	return dto.ColumnResponse{
		ColumnID:  column.ID,
		KanbanID:  column.KanbanID,
		Title:     column.Title,
		Position:  column.Position,
		CreatedAt: column.CreatedAt,
		UpdatedAt: column.UpdatedAt,
	}
}

func toCardResponse(card *domain.Card) dto.CardResponse {
	labels := make([]dto.LabelResponse, 0, len(card.Labels))
	for i := range card.Labels {
		labels = append(labels, toLabelResponse(&card.Labels[i]))
	}
	assigneeIDs := make([]uuid.UUID, 0, len(card.Assignees))
	for _, assignee := range card.Assignees {
		assigneeIDs = append(assigneeIDs, assignee.UserID)
	}
	return dto.CardResponse{
		CardID:      card.ID,
		ColumnID:    card.ColumnID,
		AuthorID:    card.AuthorID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		DueDate:     card.DueDate,
		Labels:      labels,
		AssigneeIDs: assigneeIDs,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

func toLabelResponse(label *domain.Label) dto.LabelResponse {
	return dto.LabelResponse{
		LabelID:   label.ID,
		KanbanID:  label.KanbanID,
		Name:      label.Name,
		Color:     label.Color,
		CreatedAt: label.CreatedAt,
		UpdatedAt: label.UpdatedAt,
	}
}

func toChecklistItemResponse(item *domain.ChecklistItem) dto.ChecklistItemResponse {
	return dto.ChecklistItemResponse{
		ChecklistItemID: item.ID,
		CardID:          item.CardID,
		Text:            item.Text,
		Done:            item.Done,
		Position:        item.Position,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func toCommentResponse(comment *domain.Comment) dto.CommentResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(comment.Attachments))
	for i := range comment.Attachments {
		attachments = append(attachments, toAttachmentResponse(&comment.Attachments[i]))
	}
	return dto.CommentResponse{
		CommentID:   comment.ID,
		CardID:      comment.CardID,
		UserID:      comment.UserID,
		Content:     comment.Content,
		Attachments: attachments,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}

func toAttachmentResponse(attachment *domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		AttachmentID: attachment.ID,
		EntityType:   string(attachment.EntityType),
		EntityID:     attachment.EntityID,
		Status:       string(attachment.Status),
		FileName:     attachment.FileName,
		FileSize:     attachment.FileSize,
		ContentType:  attachment.ContentType,
		UploadedBy:   attachment.UploadedBy,
		CreatedAt:    attachment.CreatedAt,
	}
}

func toMemberResponse(member *domain.KanbanMember) dto.MemberResponse {
	return dto.MemberResponse{
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

// checklistCompletion computes the done percentage of a checklist, 0 when empty
func checklistCompletion(items []domain.ChecklistItem) float64 {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.Done {
			done++
		}
	}
	return float64(done) / float64(len(items)) * 100
}
