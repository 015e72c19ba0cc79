package services

import (
	"strings"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
	"dreamhouse/internal/utils"
)

// PricingMode distinguishes the create and update coercion rules. On
// create, an absent commission or prepayment means "nothing paid yet" and
// becomes 0; on update an absent optional amount becomes NULL.
type PricingMode int

const (
	PricingCreate PricingMode = iota
	PricingUpdate
)

// RawPricing is the money part of an operator submission, exactly as the
// form sends it: strings, possibly empty, in whichever currency was picked.
type RawPricing struct {
	Currency   string
	Total      string
	Commission string
	DepositUSD string
	DepositARS string
	BalanceUSD string
	BalanceARS string
}

// ReconcilePricing turns a raw submission into a consistent snapshot:
// only the selected currency's fields are populated, the other side stays
// nil, and the commission survives only on the flagged commission channel.
// Pure transformation, no side effects.
func ReconcilePricing(mode PricingMode, channelID int64, raw RawPricing) (models.PricingSnapshot, error) {
	currency := domain.Currency(strings.ToUpper(strings.TrimSpace(raw.Currency)))
	if !currency.Valid() {
		return models.PricingSnapshot{}, domain.ValidationError{Field: "currency", Msg: "debe ser ARS o USD"}
	}

	total, err := requiredAmount(raw.Total)
	if err != nil {
		field := "booking_total_price_usd"
		if currency == domain.CurrencyARS {
			field = "booking_total_price_ars"
		}
		return models.PricingSnapshot{}, domain.ValidationError{Field: field, Msg: "precio total inválido", Err: err}
	}

	snap := models.PricingSnapshot{Currency: currency}
	if currency == domain.CurrencyARS {
		snap.TotalARS = &total
	} else {
		snap.TotalUSD = &total
	}

	if channelID == models.CommissionChannelID {
		snap.CommissionUSD, err = optionalAmount(raw.Commission, mode == PricingCreate)
		if err != nil {
			return models.PricingSnapshot{}, domain.ValidationError{Field: "comission", Msg: "comisión inválida", Err: err}
		}
	}

	zeroWhenEmpty := mode == PricingCreate
	if currency == domain.CurrencyARS {
		if snap.DepositARS, err = optionalAmount(raw.DepositARS, zeroWhenEmpty); err != nil {
			return models.PricingSnapshot{}, domain.ValidationError{Field: "prepayment_ars", Msg: "anticipo inválido", Err: err}
		}
	} else {
		if snap.DepositUSD, err = optionalAmount(raw.DepositUSD, zeroWhenEmpty); err != nil {
			return models.PricingSnapshot{}, domain.ValidationError{Field: "prepayment_usd", Msg: "anticipo inválido", Err: err}
		}
	}

	// Balance is only captured once the stay is underway; the create form
	// does not offer it.
	if mode == PricingUpdate {
		if currency == domain.CurrencyARS {
			if snap.BalanceARS, err = optionalAmount(raw.BalanceARS, false); err != nil {
				return models.PricingSnapshot{}, domain.ValidationError{Field: "balancepayment_ars", Msg: "saldo inválido", Err: err}
			}
		} else {
			if snap.BalanceUSD, err = optionalAmount(raw.BalanceUSD, false); err != nil {
				return models.PricingSnapshot{}, domain.ValidationError{Field: "balancepayment_usd", Msg: "saldo inválido", Err: err}
			}
		}
	}

	return snap, nil
}

func requiredAmount(s string) (float64, error) {
	v, err := utils.ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, domain.ValidationError{Msg: "el monto no puede ser negativo"}
	}
	return v, nil
}

// optionalAmount parses an optional monetary field. Empty input coerces to
// 0 on create and to nil on update.
func optionalAmount(s string, zeroWhenEmpty bool) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		if zeroWhenEmpty {
			zero := 0.0
			return &zero, nil
		}
		return nil, nil
	}
	v, err := requiredAmount(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
