package domain

import "time"

// NotificationTemplate selects the mail template the external renderer uses.
type NotificationTemplate string

const (
	TemplateStatusChanged      NotificationTemplate = "issue/status_changed"
	TemplatePriorityChanged    NotificationTemplate = "issue/priority_changed"
	TemplateTechnicianAssigned NotificationTemplate = "issue/technician_assigned"
	TemplateNewIssueAssigned   NotificationTemplate = "issue/new_issue_assigned"
)

// NotificationRecord describes one outbound email. It is immutable once
// built and handed to the dispatcher exactly once.
type NotificationRecord struct {
	ID        string               `json:"id"`
	Recipient string               `json:"recipient"`
	Subject   string               `json:"subject"`
	Template  NotificationTemplate `json:"template"`
	Context   map[string]any       `json:"context"`
	CreatedAt time.Time            `json:"created_at"`
}

// IssueSnapshot is the issue view embedded in notification context.
type IssueSnapshot struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Status   IssueStatus   `json:"status"`
	Priority IssuePriority `json:"priority"`
}

// SnapshotOf captures the notification-facing view of an issue.
func SnapshotOf(issue *Issue) IssueSnapshot {
	return IssueSnapshot{
		ID:       issue.ID,
		Title:    issue.Title,
		Status:   issue.Status,
		Priority: issue.Priority,
	}
}
