package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssuesHandler manages issue endpoints.
type IssuesHandler struct {
	issues *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{issues: issueService}
}

// ListIssues GET /issues. Admin only; regular users get their own via /issues/mine.
func (h *IssuesHandler) ListIssues(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	page := parseQueryInt(c, "page", 1)
	perPage := parseQueryInt(c, "perPage", 10)

	result, err := h.issues.ListIssues(c.Context(), principal, page, perPage)
	if err != nil {
		return err
	}

	items := make([]dto.IssueResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.FromIssue(&result.Items[i]))
	}
	return c.JSON(dto.IssueListResponse{Items: items, Meta: result.Meta})
}

// ListOwnIssues GET /issues/mine.
func (h *IssuesHandler) ListOwnIssues(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	issues, err := h.issues.ListOwnIssues(c.Context(), principal)
	if err != nil {
		return err
	}
	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, dto.FromIssue(&issues[i]))
	}
	return c.JSON(fiber.Map{"items": items})
}

// CreateIssue POST /issues. The caller becomes the owner.
func (h *IssuesHandler) CreateIssue(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.issues.CreateIssue(c.Context(), principal, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromIssue(issue))
}

// UpdateIssue PATCH /issues/:id.
func (h *IssuesHandler) UpdateIssue(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.issues.UpdateIssue(c.Context(), principal, c.Params("id"), service.IssueUpdateInput{
		Status:       req.Status,
		Priority:     req.Priority,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromIssue(issue))
}

func requirePrincipal(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseQueryInt(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
