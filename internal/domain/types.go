package domain

// ID is used across domain entities.
type ID int64

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// Currency selects which side of the pricing snapshot is authoritative.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether the value is one of the two accepted currencies.
func (c Currency) Valid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}
