package service

import (
	"context"
	"strings"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/pagination"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// TechnicianService manages the technician directory. Admin only.
type TechnicianService struct {
	technicians repository.TechnicianRepository
}

// NewTechnicianService constructs the service.
func NewTechnicianService(technicians repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicians: technicians}
}

// CreateTechnician registers a new directory entry.
func (s *TechnicianService) CreateTechnician(ctx context.Context, actor *domain.User, name, email string) (*domain.Technician, error) {
	if !auth.CanListAll(actor) {
		return nil, apperrors.NewForbidden("administrator role required")
	}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}

	technician := &domain.Technician{Name: name, Email: email}
	if err := s.technicians.Create(ctx, technician); err != nil {
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}

// ListTechnicians returns one page of the directory.
func (s *TechnicianService) ListTechnicians(ctx context.Context, actor *domain.User, page, perPage int) (pagination.Result[domain.Technician], error) {
	var empty pagination.Result[domain.Technician]
	if !auth.CanListAll(actor) {
		return empty, apperrors.NewForbidden("administrator role required")
	}

	all, err := s.technicians.List(ctx)
	if err != nil {
		return empty, apperrors.MapError(err)
	}
	return pagination.Paginate(all, page, perPage), nil
}
