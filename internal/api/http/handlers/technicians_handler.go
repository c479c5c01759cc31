package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// TechniciansHandler manages the technician directory endpoints.
type TechniciansHandler struct {
	technicians *service.TechnicianService
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicianService *service.TechnicianService) *TechniciansHandler {
	return &TechniciansHandler{technicians: technicianService}
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	page := parseQueryInt(c, "page", 1)
	perPage := parseQueryInt(c, "perPage", 50)

	result, err := h.technicians.ListTechnicians(c.Context(), principal, page, perPage)
	if err != nil {
		return err
	}

	items := make([]dto.TechnicianResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.FromTechnician(&result.Items[i]))
	}
	return c.JSON(dto.TechnicianListResponse{Items: items, Meta: result.Meta})
}

// CreateTechnician POST /technicians.
func (h *TechniciansHandler) CreateTechnician(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	technician, err := h.technicians.CreateTechnician(c.Context(), principal, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTechnician(technician))
}
