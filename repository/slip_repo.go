package repository

import "beneficiarydesk/models"

// SlipRepository gathers the data needed to render a token slip.
type SlipRepository struct {
	BeneficiaryRepo BeneficiaryRepository
}

func NewSlipRepository(beneficiaryRepo BeneficiaryRepository) *SlipRepository {
	return &SlipRepository{BeneficiaryRepo: beneficiaryRepo}
}

// GetSlipData fetches the beneficiary and shapes it for the slip template.
func (r *SlipRepository) GetSlipData(id string) (*models.SlipData, error) {
	b, err := r.BeneficiaryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	registeredBy := ""
	if b.CreatedByUser != nil {
		registeredBy = b.CreatedByUser.Name
	}

	return &models.SlipData{
		Beneficiary:  b,
		Date:         b.CreatedAt.Format("02-Jan-2006 03:04 PM"),
		RegisteredBy: registeredBy,
	}, nil
}
