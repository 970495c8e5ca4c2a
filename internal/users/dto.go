package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
)

// UserDTO is the outward shape of a staff account.
type UserDTO struct {
	ID        uuid.UUID        `json:"id"`
	TenantID  uuid.UUID        `json:"tenant_id"`
	Email     string           `json:"email"`
	FullName  string           `json:"full_name"`
	Role      enums.MemberRole `json:"role"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// FromModel maps a user row to its DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
