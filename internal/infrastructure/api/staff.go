package api

import (
	"context"
	"fmt"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// StaffRepository implements repository.StaffRepository against the API.
type StaffRepository struct {
	client *Client
}

// NewStaffRepository creates a new staff repository.
func NewStaffRepository(client *Client) repository.StaffRepository {
	return &StaffRepository{client: client}
}

func (r *StaffRepository) List(ctx context.Context) ([]entity.StaffMember, error) {
	return getList[entity.StaffMember](ctx, r.client, "/staff/")
}

func (r *StaffRepository) Create(ctx context.Context, member *entity.StaffMember, password string) (*entity.StaffMember, error) {
	payload := map[string]any{
		"username": member.Username,
		"email":    member.Email,
		"role":     member.Role,
		"password": password,
	}
	var created entity.StaffMember
	if err := r.client.post(ctx, "/staff/", payload, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *StaffRepository) Update(ctx context.Context, member *entity.StaffMember) (*entity.StaffMember, error) {
	var updated entity.StaffMember
	if err := r.client.patch(ctx, fmt.Sprintf("/staff/%d/", member.ID), member, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/staff/%d/", id))
}
