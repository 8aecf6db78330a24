package application

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/claims-persistence-service/domain/entities"
)

func TestComputeRemittanceStatus(t *testing.T) {
	cases := []struct {
		name          string
		netRequested  float64
		paidAmount    float64
		allDenied     bool
		want          entities.ClaimStatus
	}{
		{"full payment", 100.00, 100.00, false, entities.StatusPaid},
		{"partial payment", 100.00, 40.00, false, entities.StatusPartiallyPaid},
		{"all denied zero payment", 100.00, 0, true, entities.StatusRejected},
		{"zero payment not all denied", 100.00, 0, false, entities.StatusPartiallyPaid},
		{"overpayment falls to conservative default", 100.00, 150.00, false, entities.StatusPartiallyPaid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := computeRemittanceStatus(decimal.NewFromFloat(c.netRequested), decimal.NewFromFloat(c.paidAmount), c.allDenied)
			if got != c.want {
				t.Fatalf("computeRemittanceStatus(%v, %v, %v) = %v, want %v", c.netRequested, c.paidAmount, c.allDenied, got, c.want)
			}
		})
	}
}
