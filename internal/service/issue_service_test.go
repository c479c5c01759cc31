package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

type fakeIssueRepo struct {
	issues map[string]domain.Issue
	nextID int
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[string]domain.Issue)}
}

func (f *fakeIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	f.nextID++
	issue.ID = fmt.Sprintf("i-%d", f.nextID)
	f.issues[issue.ID] = *issue
	return nil
}

func (f *fakeIssueRepo) Update(_ context.Context, issue *domain.Issue) error {
	if _, ok := f.issues[issue.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.issues[issue.ID] = *issue
	return nil
}

func (f *fakeIssueRepo) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := issue
	return &copied, nil
}

func (f *fakeIssueRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.issues)), nil
}

func (f *fakeIssueRepo) ListPage(_ context.Context, limit, offset int) ([]domain.Issue, error) {
	all := make([]domain.Issue, 0, len(f.issues))
	for _, issue := range f.issues {
		all = append(all, issue)
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeIssueRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Issue, error) {
	var result []domain.Issue
	for _, issue := range f.issues {
		if issue.OwnerID == ownerID {
			result = append(result, issue)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeTechnicianRepo struct {
	technicians map[string]domain.Technician
}

func (f *fakeTechnicianRepo) Create(_ context.Context, technician *domain.Technician) error {
	f.technicians[technician.ID] = *technician
	return nil
}

func (f *fakeTechnicianRepo) GetByID(_ context.Context, id string) (*domain.Technician, error) {
	technician, ok := f.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := technician
	return &copied, nil
}

func (f *fakeTechnicianRepo) List(_ context.Context) ([]domain.Technician, error) {
	var result []domain.Technician
	for _, technician := range f.technicians {
		result = append(result, technician)
	}
	return result, nil
}

type captureDispatcher struct {
	records []domain.NotificationRecord
}

func (c *captureDispatcher) Enqueue(record domain.NotificationRecord) {
	c.records = append(c.records, record)
}

type fixture struct {
	svc        *service.IssueService
	issues     *fakeIssueRepo
	dispatcher *captureDispatcher
	owner      *domain.User
	admin      *domain.User
	stranger   *domain.User
	technician domain.Technician
	issue      domain.Issue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	owner := domain.User{ID: "u-owner", Email: "owner@example.com", Role: domain.RoleUser}
	admin := domain.User{ID: "u-admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	stranger := domain.User{ID: "u-other", Email: "other@example.com", Role: domain.RoleUser}
	technician := domain.Technician{ID: "t-1", Name: "Tess", Email: "tess@example.com"}

	issues := newFakeIssueRepo()
	users := &fakeUserRepo{users: map[string]domain.User{
		owner.ID:    owner,
		admin.ID:    admin,
		stranger.ID: stranger,
	}}
	technicians := &fakeTechnicianRepo{technicians: map[string]domain.Technician{
		technician.ID: technician,
	}}
	dispatcher := &captureDispatcher{}

	svc := service.NewIssueService(service.IssueDependencies{
		IssueRepo:      issues,
		UserRepo:       users,
		TechnicianRepo: technicians,
		Dispatcher:     dispatcher,
	})

	issue := domain.Issue{
		ID:          "i-1",
		OwnerID:     owner.ID,
		Title:       "broken keyboard",
		Description: "keys missing",
		Status:      domain.IssueStatusNew,
		Priority:    domain.IssuePriorityMedium,
	}
	issues.issues[issue.ID] = issue

	return &fixture{
		svc:        svc,
		issues:     issues,
		dispatcher: dispatcher,
		owner:      &owner,
		admin:      &admin,
		stranger:   &stranger,
		technician: technician,
		issue:      issue,
	}
}

func strptr(s string) *string { return &s }

func TestUpdateIssueStatus(t *testing.T) {
	for _, status := range []string{"new", "in_progress", "done", "closed"} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)

			updated, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
				Status: strptr(status),
			})
			require.NoError(t, err)
			assert.Equal(t, domain.IssueStatus(status), updated.Status)

			stored, _ := f.issues.GetByID(context.Background(), f.issue.ID)
			assert.Equal(t, domain.IssueStatus(status), stored.Status)

			require.Len(t, f.dispatcher.records, 1)
			record := f.dispatcher.records[0]
			assert.Equal(t, f.owner.Email, record.Recipient)
			assert.Equal(t, domain.TemplateStatusChanged, record.Template)
			assert.Equal(t, f.issue.ID, record.Context["issue_id"])
			assert.Equal(t, domain.IssueStatus(status), record.Context["status"])
		})
	}
}

func TestUpdateIssuePriority(t *testing.T) {
	for _, priority := range []string{"low", "medium", "high", "critical"} {
		t.Run(priority, func(t *testing.T) {
			f := newFixture(t)

			updated, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
				Priority: strptr(priority),
			})
			require.NoError(t, err)
			assert.Equal(t, domain.IssuePriority(priority), updated.Priority)

			require.Len(t, f.dispatcher.records, 1)
			record := f.dispatcher.records[0]
			assert.Equal(t, f.owner.Email, record.Recipient)
			assert.Equal(t, domain.TemplatePriorityChanged, record.Template)
			assert.Equal(t, domain.IssuePriority(priority), record.Context["priority"])
		})
	}
}

func TestUpdateIssueAssignTechnician(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.UpdateIssue(context.Background(), f.admin, f.issue.ID, service.IssueUpdateInput{
		TechnicianID: strptr(f.technician.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, f.technician.ID, *updated.TechnicianID)

	// Owner notification precedes the technician notification.
	require.Len(t, f.dispatcher.records, 2)
	assert.Equal(t, f.owner.Email, f.dispatcher.records[0].Recipient)
	assert.Equal(t, domain.TemplateTechnicianAssigned, f.dispatcher.records[0].Template)
	assert.Equal(t, f.technician.Email, f.dispatcher.records[1].Recipient)
	assert.Equal(t, domain.TemplateNewIssueAssigned, f.dispatcher.records[1].Template)
}

func TestUpdateIssueTechnicianNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
		TechnicianID: strptr("t-missing"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTechnicianNotFound))

	stored, _ := f.issues.GetByID(context.Background(), f.issue.ID)
	assert.Nil(t, stored.TechnicianID)
	assert.Empty(t, f.dispatcher.records)
}

func TestUpdateIssueAbortsWholeCallOnTechnicianFailure(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
		Status:       strptr("done"),
		TechnicianID: strptr("t-missing"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTechnicianNotFound))

	// Neither the staged status change nor any notification survives.
	stored, _ := f.issues.GetByID(context.Background(), f.issue.ID)
	assert.Equal(t, domain.IssueStatusNew, stored.Status)
	assert.Empty(t, f.dispatcher.records)
}

func TestUpdateIssueInvalidEnumValue(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
		Status: strptr("reopened"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidEnumValue))

	stored, _ := f.issues.GetByID(context.Background(), f.issue.ID)
	assert.Equal(t, domain.IssueStatusNew, stored.Status)
	assert.Empty(t, f.dispatcher.records)
}

func TestUpdateIssueSameStatusStillNotifies(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{
		Status: strptr("new"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusNew, updated.Status)
	assert.Len(t, f.dispatcher.records, 1)
}

func TestUpdateIssueNotificationOrdering(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.admin, f.issue.ID, service.IssueUpdateInput{
		Status:       strptr("in_progress"),
		Priority:     strptr("high"),
		TechnicianID: strptr(f.technician.ID),
	})
	require.NoError(t, err)

	require.Len(t, f.dispatcher.records, 4)
	assert.Equal(t, domain.TemplateStatusChanged, f.dispatcher.records[0].Template)
	assert.Equal(t, domain.TemplatePriorityChanged, f.dispatcher.records[1].Template)
	assert.Equal(t, domain.TemplateTechnicianAssigned, f.dispatcher.records[2].Template)
	assert.Equal(t, domain.TemplateNewIssueAssigned, f.dispatcher.records[3].Template)
}

func TestUpdateIssueAccessControl(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.stranger, f.issue.ID, service.IssueUpdateInput{
		Status: strptr("done"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Empty(t, f.dispatcher.records)

	_, err = f.svc.UpdateIssue(context.Background(), f.admin, f.issue.ID, service.IssueUpdateInput{
		Status: strptr("done"),
	})
	assert.NoError(t, err)
}

func TestUpdateIssueNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateIssue(context.Background(), f.owner, "i-missing", service.IssueUpdateInput{
		Status: strptr("done"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestUpdateIssueNoFieldsIsNoOp(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.UpdateIssue(context.Background(), f.owner, f.issue.ID, service.IssueUpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, f.issue.Status, updated.Status)
	assert.Equal(t, f.issue.Priority, updated.Priority)
	assert.Empty(t, f.dispatcher.records)
}

func TestCreateIssueDefaults(t *testing.T) {
	f := newFixture(t)

	issue, err := f.svc.CreateIssue(context.Background(), f.owner, service.IssueCreateInput{
		Title:       "  no network  ",
		Description: "cable unplugged",
	})
	require.NoError(t, err)
	assert.Equal(t, "no network", issue.Title)
	assert.Equal(t, f.owner.ID, issue.OwnerID)
	assert.Equal(t, domain.IssueStatusNew, issue.Status)
	assert.Equal(t, domain.IssuePriorityMedium, issue.Priority)
	assert.Nil(t, issue.TechnicianID)
}

func TestCreateIssueRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateIssue(context.Background(), f.owner, service.IssueCreateInput{Title: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestListIssuesAdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListIssues(context.Background(), f.owner, 1, 10)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	result, err := f.svc.ListIssues(context.Background(), f.admin, 1, 10)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Meta.TotalItems)
	assert.Equal(t, 1, result.Meta.TotalPages)
}
