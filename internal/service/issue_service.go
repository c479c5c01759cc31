package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/notify"
	"github.com/spec-kit/issue-tracker/internal/pagination"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssueService coordinates issue lifecycle changes and the notifications
// they imply. All mutations of the Issue aggregate go through here.
type IssueService struct {
	issues      repository.IssueRepository
	users       repository.UserRepository
	technicians repository.TechnicianRepository
	dispatcher  notify.Dispatcher
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo      repository.IssueRepository
	UserRepo       repository.UserRepository
	TechnicianRepo repository.TechnicianRepository
	Dispatcher     notify.Dispatcher
}

// IssueCreateInput describes issue creation payload.
type IssueCreateInput struct {
	Title       string
	Description string
}

// IssueUpdateInput carries the optional field changes of one update call.
// A nil field means "no change requested".
type IssueUpdateInput struct {
	Status       *string
	Priority     *string
	TechnicianID *string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:      deps.IssueRepo,
		users:       deps.UserRepo,
		technicians: deps.TechnicianRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateIssue opens a new issue owned by the acting user.
func (s *IssueService) CreateIssue(ctx context.Context, actor *domain.User, input IssueCreateInput) (*domain.Issue, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	issue := &domain.Issue{
		OwnerID:     actor.ID,
		Title:       title,
		Description: description,
		Status:      domain.IssueStatusNew,
		Priority:    domain.IssuePriorityMedium,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return issue, nil
}

// ListIssues returns one page of the full issue listing. Admin only.
func (s *IssueService) ListIssues(ctx context.Context, actor *domain.User, page, perPage int) (pagination.Result[domain.Issue], error) {
	var empty pagination.Result[domain.Issue]
	if !auth.CanListAll(actor) {
		return empty, apperrors.NewForbidden("administrator role required")
	}

	total, err := s.issues.Count(ctx)
	if err != nil {
		return empty, apperrors.MapError(err)
	}
	meta := pagination.Compute(total, page, perPage)

	items, err := s.issues.ListPage(ctx, meta.PerPage, meta.Offset())
	if err != nil {
		return empty, apperrors.MapError(err)
	}
	if items == nil {
		items = []domain.Issue{}
	}
	return pagination.Result[domain.Issue]{Items: items, Meta: meta}, nil
}

// ListOwnIssues returns the acting user's issues.
func (s *IssueService) ListOwnIssues(ctx context.Context, actor *domain.User) ([]domain.Issue, error) {
	issues, err := s.issues.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

// stagedUpdate holds resolved field changes before any of them is applied.
type stagedUpdate struct {
	status     *domain.IssueStatus
	priority   *domain.IssuePriority
	technician *domain.Technician
}

// UpdateIssue applies the requested field changes and emits the matching
// notifications. The call is atomic: every requested change is resolved
// before the aggregate is touched, so a failed technician lookup or a bad
// enum value leaves the issue unchanged and emits nothing. A re-submitted
// current value still counts as a change and still notifies.
func (s *IssueService) UpdateIssue(ctx context.Context, actor *domain.User, issueID string, input IssueUpdateInput) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.CanModify(actor, issue) {
		return nil, apperrors.NewForbidden("access denied")
	}

	staged, err := s.resolveChanges(ctx, input)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, issue.OwnerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var records []domain.NotificationRecord

	if staged.status != nil {
		issue.Status = *staged.status
		records = append(records, statusChangedRecord(owner, issue))
	}
	if staged.priority != nil {
		issue.Priority = *staged.priority
		records = append(records, priorityChangedRecord(owner, issue))
	}
	if staged.technician != nil {
		issue.TechnicianID = &staged.technician.ID
		records = append(records,
			technicianAssignedRecord(owner, issue, staged.technician),
			newIssueAssignedRecord(issue, staged.technician),
		)
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, record := range records {
		s.dispatcher.Enqueue(record)
	}
	return issue, nil
}

// resolveChanges validates every requested field before anything mutates.
func (s *IssueService) resolveChanges(ctx context.Context, input IssueUpdateInput) (stagedUpdate, error) {
	var staged stagedUpdate

	if input.Status != nil {
		status, err := domain.ParseIssueStatus(*input.Status)
		if err != nil {
			return stagedUpdate{}, err
		}
		staged.status = &status
	}
	if input.Priority != nil {
		priority, err := domain.ParseIssuePriority(*input.Priority)
		if err != nil {
			return stagedUpdate{}, err
		}
		staged.priority = &priority
	}
	if input.TechnicianID != nil {
		technician, err := s.technicians.GetByID(ctx, *input.TechnicianID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return stagedUpdate{}, apperrors.NewTechnicianNotFound(*input.TechnicianID)
			}
			return stagedUpdate{}, apperrors.MapError(err)
		}
		staged.technician = technician
	}
	return staged, nil
}

func statusChangedRecord(owner *domain.User, issue *domain.Issue) domain.NotificationRecord {
	return newRecord(owner.Email, "Issue status changed", domain.TemplateStatusChanged, map[string]any{
		"issue_id": issue.ID,
		"issue":    domain.SnapshotOf(issue),
		"status":   issue.Status,
	})
}

func priorityChangedRecord(owner *domain.User, issue *domain.Issue) domain.NotificationRecord {
	return newRecord(owner.Email, "Issue priority changed", domain.TemplatePriorityChanged, map[string]any{
		"issue_id": issue.ID,
		"issue":    domain.SnapshotOf(issue),
		"priority": issue.Priority,
	})
}

func technicianAssignedRecord(owner *domain.User, issue *domain.Issue, technician *domain.Technician) domain.NotificationRecord {
	return newRecord(owner.Email, "Technician assigned to your issue", domain.TemplateTechnicianAssigned, map[string]any{
		"issue_id":   issue.ID,
		"issue":      domain.SnapshotOf(issue),
		"technician": map[string]any{"id": technician.ID, "name": technician.Name},
	})
}

func newIssueAssignedRecord(issue *domain.Issue, technician *domain.Technician) domain.NotificationRecord {
	return newRecord(technician.Email, "New issue assigned to you", domain.TemplateNewIssueAssigned, map[string]any{
		"issue_id": issue.ID,
		"issue":    domain.SnapshotOf(issue),
	})
}

func newRecord(recipient, subject string, template domain.NotificationTemplate, context map[string]any) domain.NotificationRecord {
	return domain.NotificationRecord{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Subject:   subject,
		Template:  template,
		Context:   context,
		CreatedAt: time.Now(),
	}
}
