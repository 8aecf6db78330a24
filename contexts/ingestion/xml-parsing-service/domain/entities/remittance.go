package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceGraph is the fully decoded Remittance.Advice document.
type RemittanceGraph struct {
	Header Header
	Claims []RemittanceClaimDTO
}

type RemittanceClaimDTO struct {
	ClaimID         string
	IDPayer         string
	ProviderID      string
	DenialCode      string
	PaymentReference string
	SettlementDate  time.Time
	FacilityID      string
	Comment         string

	Activities []RemittanceActivityDTO
}

func (c RemittanceClaimDTO) HasRequiredFields() bool {
	return c.ClaimID != "" && c.IDPayer != "" && c.ProviderID != "" && c.PaymentReference != ""
}

type RemittanceActivityDTO struct {
	ActivityID    string
	Type          string
	Code          string
	Quantity      decimal.Decimal
	Net           decimal.Decimal
	ListPrice     decimal.Decimal
	Gross         decimal.Decimal
	PatientShare  decimal.Decimal
	PaymentAmount decimal.Decimal
	DenialCode    string
}

func (a RemittanceActivityDTO) HasRequiredFields() bool {
	return a.ActivityID != "" && a.Code != ""
}
