package repository

import "beneficiarydesk/models"

// ListFilter narrows a beneficiary listing. TokenID takes precedence over
// CNIC when both are set.
type ListFilter struct {
	TokenID string
	CNIC    string
}

// BeneficiaryUpdate carries the staff-editable fields; nil means leave
// unchanged.
type BeneficiaryUpdate struct {
	Status  *string
	Remarks *string
}

// BeneficiaryRepository is the ledger: it owns token issuance and every read
// and write against beneficiary records, including the dashboard rollup.
type BeneficiaryRepository interface {
	// Register persists a new beneficiary and assigns its day-scoped
	// sequential token. The count-and-assign step is a single atomic counter
	// mutation on every backend; concurrent registrations can never observe
	// the same sequence number.
	Register(b *models.Beneficiary) error
	FindByID(id string) (*models.Beneficiary, error)
	FindByToken(tokenID string) (*models.Beneficiary, error)
	// List returns a page ordered by creation time descending, plus the total
	// match count.
	List(filter ListFilter, page, limit int64) ([]*models.Beneficiary, int64, error)
	UpdateStatusRemarks(id string, update BeneficiaryUpdate) (*models.Beneficiary, error)
	// DashboardStats computes the rollup in a single aggregation pass.
	DashboardStats() (*models.DashboardStats, error)
}
