package repoargs

import (
	"github.com/shopspring/decimal"
)

type CreateMovie struct {
	CreatorID       string
	Title           string
	Description     string
	Poster          string
	Director        string
	Producer        string
	Singer          string
	Hero            string
	Heroine         string
	TotalAmount     decimal.Decimal
	InvestedAmount  decimal.Decimal
	StockPrice      decimal.Decimal
	AvailableStocks int64
}

// UpdateMovie полный набор редактируемых полей проекта. Поля финансирования (InvestedAmount)
// намеренно отсутствуют: они меняются только через ApplyInvestment.
type UpdateMovie struct {
	ID              string
	Title           string
	Description     string
	Poster          string
	Director        string
	Producer        string
	Singer          string
	Hero            string
	Heroine         string
	TotalAmount     decimal.Decimal
	StockPrice      decimal.Decimal
	AvailableStocks int64
}

// ApplyInvestment приращение финансирования проекта. Amount = StockCount * StockPrice считается сервисом.
type ApplyInvestment struct {
	MovieID    string
	StockCount int64
	Amount     decimal.Decimal
}
