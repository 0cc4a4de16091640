package models

// SlipData feeds the printable token slip template.
type SlipData struct {
	Beneficiary  *Beneficiary
	Date         string
	RegisteredBy string
}
