package services

import (
	"testing"

	"dreamhouse/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePricing_OnlySelectedCurrencyPopulated(t *testing.T) {
	snap, err := ReconcilePricing(PricingCreate, 2, RawPricing{
		Currency: "USD",
		Total:    "1.500,50",
	})
	require.NoError(t, err)

	require.NotNil(t, snap.TotalUSD)
	assert.Equal(t, 1500.50, *snap.TotalUSD)
	assert.Nil(t, snap.TotalARS)
	assert.Equal(t, domain.CurrencyUSD, snap.Currency)

	snap, err = ReconcilePricing(PricingCreate, 2, RawPricing{
		Currency: "ars",
		Total:    "250000",
	})
	require.NoError(t, err)

	require.NotNil(t, snap.TotalARS)
	assert.Equal(t, 250000.0, *snap.TotalARS)
	assert.Nil(t, snap.TotalUSD)
	assert.Equal(t, domain.CurrencyARS, snap.Currency)
}

func TestReconcilePricing_CreateCoercesEmptyToZero(t *testing.T) {
	snap, err := ReconcilePricing(PricingCreate, 1, RawPricing{
		Currency: "USD",
		Total:    "900",
	})
	require.NoError(t, err)

	require.NotNil(t, snap.CommissionUSD)
	assert.Equal(t, 0.0, *snap.CommissionUSD)
	require.NotNil(t, snap.DepositUSD)
	assert.Equal(t, 0.0, *snap.DepositUSD)
	assert.Nil(t, snap.BalanceUSD, "create never captures a balance payment")
}

func TestReconcilePricing_UpdateLeavesEmptyAsNil(t *testing.T) {
	snap, err := ReconcilePricing(PricingUpdate, 1, RawPricing{
		Currency: "USD",
		Total:    "900",
	})
	require.NoError(t, err)

	assert.Nil(t, snap.CommissionUSD)
	assert.Nil(t, snap.DepositUSD)
	assert.Nil(t, snap.BalanceUSD)
}

func TestReconcilePricing_CommissionOnlyOnCommissionChannel(t *testing.T) {
	snap, err := ReconcilePricing(PricingUpdate, 3, RawPricing{
		Currency:   "USD",
		Total:      "1200",
		Commission: "120",
	})
	require.NoError(t, err)
	assert.Nil(t, snap.CommissionUSD, "commission discarded off the commission channel")

	snap, err = ReconcilePricing(PricingUpdate, 1, RawPricing{
		Currency:   "USD",
		Total:      "1200",
		Commission: "120",
	})
	require.NoError(t, err)
	require.NotNil(t, snap.CommissionUSD)
	assert.Equal(t, 120.0, *snap.CommissionUSD)
}

func TestReconcilePricing_UpdateCapturesBalance(t *testing.T) {
	snap, err := ReconcilePricing(PricingUpdate, 2, RawPricing{
		Currency:   "ARS",
		Total:      "300.000",
		DepositARS: "100.000",
		BalanceARS: "150.000",
	})
	require.NoError(t, err)

	require.NotNil(t, snap.DepositARS)
	assert.Equal(t, 100000.0, *snap.DepositARS)
	require.NotNil(t, snap.BalanceARS)
	assert.Equal(t, 150000.0, *snap.BalanceARS)
	assert.Nil(t, snap.BalanceUSD)
}

func TestReconcilePricing_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  RawPricing
	}{
		{"currency desconocida", RawPricing{Currency: "EUR", Total: "100"}},
		{"total vacío", RawPricing{Currency: "USD"}},
		{"total no numérico", RawPricing{Currency: "USD", Total: "mil"}},
		{"total negativo", RawPricing{Currency: "USD", Total: "-5"}},
		{"anticipo no numérico", RawPricing{Currency: "USD", Total: "100", DepositUSD: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReconcilePricing(PricingCreate, 1, tc.raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}
