package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/pagination"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateIssueRequest payload. Absent fields request no change.
type UpdateIssueRequest struct {
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	TechnicianID *string `json:"technicianId"`
}

// IssueResponse is the issue view returned by the API.
type IssueResponse struct {
	ID           string                `json:"id"`
	OwnerID      string                `json:"owner_id"`
	TechnicianID *string               `json:"technician_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       domain.IssueStatus    `json:"status"`
	Priority     domain.IssuePriority  `json:"priority"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// IssueListResponse is one page of issues plus pagination metadata.
type IssueListResponse struct {
	Items []IssueResponse `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// FromIssue maps the aggregate to its response form.
func FromIssue(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:           issue.ID,
		OwnerID:      issue.OwnerID,
		TechnicianID: issue.TechnicianID,
		Title:        issue.Title,
		Description:  issue.Description,
		Status:       issue.Status,
		Priority:     issue.Priority,
		CreatedAt:    issue.CreatedAt,
		UpdatedAt:    issue.UpdatedAt,
	}
}
