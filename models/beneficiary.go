package models

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

type Beneficiary struct {
	ID            string       `json:"id" bson:"_id,omitempty" db:"id"`
	CNIC          string       `json:"cnic" bson:"cnic" db:"cnic"`
	Name          string       `json:"name" bson:"name" db:"name"`
	Phone         string       `json:"phone" bson:"phone" db:"phone"`
	Address       string       `json:"address" bson:"address" db:"address"`
	Purpose       string       `json:"purpose" bson:"purpose" db:"purpose"`
	TokenID       string       `json:"tokenID" bson:"token_id" db:"token_id"`
	Status        string       `json:"status" bson:"status" db:"status"`
	Remarks       string       `json:"remarks" bson:"remarks" db:"remarks"`
	CreatedBy     string       `json:"createdBy,omitempty" bson:"created_by,omitempty" db:"created_by"`
	CreatedByUser *UserSummary `json:"createdByUser,omitempty" bson:"-" db:"-"`
	CreatedAt     time.Time    `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// ValidStatus reports whether s is one of the stored status values. "rejected"
// shows up in some legacy UI screens but was never a storable value; the ledger
// rejects it here rather than trusting each caller.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
