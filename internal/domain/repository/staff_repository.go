package repository

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// StaffRepository defines staff account operations against the API.
type StaffRepository interface {
	List(ctx context.Context) ([]entity.StaffMember, error)
	Create(ctx context.Context, member *entity.StaffMember, password string) (*entity.StaffMember, error)
	Update(ctx context.Context, member *entity.StaffMember) (*entity.StaffMember, error)
	Delete(ctx context.Context, id int64) error
}
