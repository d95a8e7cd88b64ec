package mapping

import (
	"github.com/bizopshq/bizops_backend/internal/core/domain"
	"github.com/bizopshq/bizops_backend/internal/models"
)

// ToModelTask converts a domain Task to a model Task.
// Comments are mapped separately since they live in their own table.
func ToModelTask(d domain.Task) models.Task {
	return models.Task{
		TaskID:      d.TaskID,
		OwnerID:     d.OwnerID,
		ClientID:    d.ClientID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		DueDate:     d.DueDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTask converts a model Task to a domain Task
func ToDomainTask(m models.Task) domain.Task {
	return domain.Task{
		TaskID:      m.TaskID,
		OwnerID:     m.OwnerID,
		ClientID:    m.ClientID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.TaskStatus(m.Status),
		DueDate:     m.DueDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTaskComment converts a domain TaskComment to a model TaskComment
func ToModelTaskComment(d domain.TaskComment) models.TaskComment {
	return models.TaskComment{
		CommentID: d.CommentID,
		TaskID:    d.TaskID,
		AuthorID:  d.AuthorID,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainTaskComment converts a model TaskComment to a domain TaskComment
func ToDomainTaskComment(m models.TaskComment) domain.TaskComment {
	return domain.TaskComment{
		CommentID: m.CommentID,
		TaskID:    m.TaskID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
