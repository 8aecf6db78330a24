package application

import (
	"strings"

	"github.com/shopspring/decimal"

	xmlentities "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

// computeRemittanceStatus implements spec.md §4.4 step 7's payment
// arithmetic. It is a pure function so the PARTIALLY_PAID conservative
// default can be exercised directly in tests without a database.
func computeRemittanceStatus(netRequested, paidAmount decimal.Decimal, allDenied bool) entities.ClaimStatus {
	switch {
	case paidAmount.Equal(netRequested) && netRequested.Sign() >= 0:
		return entities.StatusPaid
	case paidAmount.IsPositive() && paidAmount.LessThan(netRequested):
		return entities.StatusPartiallyPaid
	case paidAmount.IsZero() && allDenied:
		return entities.StatusRejected
	default:
		return entities.StatusPartiallyPaid
	}
}

// decimalSumPayments sums paymentAmount across a remittance claim's valid
// activities.
func decimalSumPayments(activities []xmlentities.RemittanceActivityDTO) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range activities {
		sum = sum.Add(a.PaymentAmount)
	}
	return sum
}

// allActivitiesDenied reports whether every activity carries a non-blank
// denial code and a zero payment amount, per spec.md §4.4 step 7.
func allActivitiesDenied(activities []xmlentities.RemittanceActivityDTO) bool {
	for _, a := range activities {
		if strings.TrimSpace(a.DenialCode) == "" || !a.PaymentAmount.IsZero() {
			return false
		}
	}
	return true
}

