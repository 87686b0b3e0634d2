package repoargs

import "github.com/shopspring/decimal"

type CreateInvestment struct {
	MovieID      string
	MovieTitle   string
	InvestorID   string
	InvestorName string
	StockCount   int64
	StockPrice   decimal.Decimal
	TotalAmount  decimal.Decimal
}
