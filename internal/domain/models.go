package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type User struct {
	ID        string
	CreatedAt time.Time
	Username  string
	Email     string
	Password  string
	Role      RoleType
}

// Movie проект, собирающий финансирование. InvestedAmount и AvailableStocks меняются только через
// леджер (MovieService), все остальные поля - через редактирование проекта создателем.
type Movie struct {
	ID              string
	CreatedAt       time.Time
	UpdatedAt       time.Time
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

// RequiredAmount сумма, которую еще нужно собрать до цели.
func (m Movie) RequiredAmount() decimal.Decimal {
	return m.TotalAmount.Sub(m.InvestedAmount)
}

// MaxAffordableStocks кол-во акций, которое помещается в оставшийся разрыв финансирования.
// Округление всегда вниз: дробная акция не может быть продана.
func (m Movie) MaxAffordableStocks() int64 {
	if !m.StockPrice.IsPositive() {
		return 0
	}
	required := m.RequiredAmount()
	if !required.IsPositive() {
		return 0
	}
	// QuoRem с нулевой точностью дает целую часть частного без округления вверх.
	affordable, _ := required.QuoRem(m.StockPrice, 0)
	return affordable.IntPart()
}

// MaxPurchasableStocks верхняя граница одной покупки: min(AvailableStocks, MaxAffordableStocks).
func (m Movie) MaxPurchasableStocks() int64 {
	maxAllowed := min(m.AvailableStocks, m.MaxAffordableStocks())
	if maxAllowed < 0 {
		return 0
	}
	return maxAllowed
}

// FundedPercent доля собранных средств в процентах с точностью до сотых.
func (m Movie) FundedPercent() decimal.Decimal {
	if !m.TotalAmount.IsPositive() {
		return decimal.Zero
	}
	return m.InvestedAmount.Mul(hundred).DivRound(m.TotalAmount, 2)
}

// Validate проверяет инварианты проекта.
func (m Movie) Validate() error {
	switch {
	case m.CreatorID == "":
		return NewInvalidMovieError("creatorId is required")
	case m.Title == "":
		return NewInvalidMovieError("title is required")
	case !m.TotalAmount.IsPositive():
		return NewInvalidMovieError("totalAmount must be positive")
	case !m.StockPrice.IsPositive():
		return NewInvalidMovieError("stockPrice must be positive")
	case m.InvestedAmount.IsNegative():
		return NewInvalidMovieError("investedAmount must not be negative")
	case m.InvestedAmount.GreaterThan(m.TotalAmount):
		return NewInvalidMovieError("investedAmount must not exceed totalAmount")
	case m.AvailableStocks < 0:
		return NewInvalidMovieError("availableStocks must not be negative")
	}
	return nil
}

type Investment struct {
	ID           string
	CreatedAt    time.Time
	MovieID      string
	MovieTitle   string
	InvestorID   string
	InvestorName string
	StockCount   int64
	StockPrice   decimal.Decimal
	TotalAmount  decimal.Decimal
}
