package dto

import (
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/pagination"
)

// CreateTechnicianRequest payload.
type CreateTechnicianRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TechnicianResponse is the directory entry view.
type TechnicianResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TechnicianListResponse is one page of the directory.
type TechnicianListResponse struct {
	Items []TechnicianResponse `json:"items"`
	Meta  pagination.Meta      `json:"meta"`
}

// FromTechnician maps a technician to its response form.
func FromTechnician(technician *domain.Technician) TechnicianResponse {
	return TechnicianResponse{ID: technician.ID, Name: technician.Name, Email: technician.Email}
}
