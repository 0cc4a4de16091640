package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleStaff        = "staff"
)

type AppUser struct {
	ID        string    `json:"id" bson:"_id,omitempty" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	Role      string    `json:"role" bson:"role" db:"role"`
	Password  string    `json:"password,omitempty" bson:"password" db:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// NormalizeRole lower-cases a role string. Roles are normalized once at the
// auth boundary and stored/compared only in this form.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleReceptionist, RoleStaff:
		return true
	}
	return false
}

// UserSummary is the populated created_by view on beneficiary reads.
type UserSummary struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
	Role string `json:"role" bson:"role"`
}
