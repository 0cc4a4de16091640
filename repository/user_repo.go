package repository

import "beneficiarydesk/models"

// UserUpdate carries the admin-editable fields; nil means leave unchanged.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

// UserRepository defines the credential store operations.
type UserRepository interface {
	CreateUser(user *models.AppUser) error
	GetUserByEmail(email string) (*models.AppUser, error)
	GetUserByID(id string) (*models.AppUser, error)
	// ListUsers returns every user except excludeID, without password hashes.
	ListUsers(excludeID string) ([]*models.AppUser, error)
	UpdateUser(id string, update UserUpdate) (*models.AppUser, error)
	DeleteUser(id string) error
}
