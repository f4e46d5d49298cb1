package service

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// StaffService manages staff accounts for the shop.
type StaffService struct {
	staff repository.StaffRepository
}

// NewStaffService creates a new staff service.
func NewStaffService(staff repository.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

// List returns the shop's staff members.
func (s *StaffService) List(ctx context.Context) ([]entity.StaffMember, error) {
	return s.staff.List(ctx)
}

// Create adds a staff account with an initial password.
func (s *StaffService) Create(ctx context.Context, member *entity.StaffMember, password string) (*entity.StaffMember, error) {
	return s.staff.Create(ctx, member, password)
}

// Update modifies a staff account.
func (s *StaffService) Update(ctx context.Context, member *entity.StaffMember) (*entity.StaffMember, error) {
	return s.staff.Update(ctx, member)
}

// Delete removes a staff account.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	return s.staff.Delete(ctx, id)
}
