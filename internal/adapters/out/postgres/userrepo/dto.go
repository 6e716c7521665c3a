// Package userrepo provides the read-only repository for the user directory.
// User rows are written by the identity provider's provisioning; this
// package only reads them back.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for registered accounts.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string
	Email       string    `gorm:"uniqueIndex"`
	Role        string    `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// toDomain converts a database DTO to a user entity.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := actor.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.DisplayName, dto.Email, role, dto.CreatedAt)
}
