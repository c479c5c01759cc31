package domain

import (
	"time"

	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusNew        IssueStatus = "new"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusDone       IssueStatus = "done"
	IssueStatusClosed     IssueStatus = "closed"
)

// IssuePriority enumerates urgency levels.
type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "low"
	IssuePriorityMedium   IssuePriority = "medium"
	IssuePriorityHigh     IssuePriority = "high"
	IssuePriorityCritical IssuePriority = "critical"
)

// ParseIssueStatus validates an external string against the closed status set.
func ParseIssueStatus(raw string) (IssueStatus, error) {
	switch IssueStatus(raw) {
	case IssueStatusNew, IssueStatusInProgress, IssueStatusDone, IssueStatusClosed:
		return IssueStatus(raw), nil
	}
	return "", apperrors.NewInvalidEnumValue("status", raw)
}

// ParseIssuePriority validates an external string against the closed priority set.
func ParseIssuePriority(raw string) (IssuePriority, error) {
	switch IssuePriority(raw) {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return IssuePriority(raw), nil
	}
	return "", apperrors.NewInvalidEnumValue("priority", raw)
}

// Issue is the support ticket aggregate. Status, priority and technician
// assignment change only through the issue service update path.
type Issue struct {
	ID           string
	OwnerID      string
	TechnicianID *string
	Title        string
	Description  string
	Status       IssueStatus
	Priority     IssuePriority
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
