package api

import (
	"time"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      domain.RoleType `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// MovieResponse суммы отдаются числами, как в исходном api. Поля requiredAmount, fundedPercent и
// maxPurchasable вычисляемые.
type MovieResponse struct {
	ID              string    `json:"id"`
	CreatorID       string    `json:"creatorId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Poster          string    `json:"poster,omitempty"`
	Director        string    `json:"director,omitempty"`
	Producer        string    `json:"producer,omitempty"`
	Singer          string    `json:"singer,omitempty"`
	Hero            string    `json:"hero,omitempty"`
	Heroine         string    `json:"heroine,omitempty"`
	TotalAmount     float64   `json:"totalAmount"`
	InvestedAmount  float64   `json:"investedAmount"`
	StockPrice      float64   `json:"stockPrice"`
	AvailableStocks int64     `json:"availableStocks"`
	RequiredAmount  float64   `json:"requiredAmount"`
	FundedPercent   float64   `json:"fundedPercent"`
	MaxPurchasable  int64     `json:"maxPurchasable"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func newMovieResponse(m *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:              m.ID,
		CreatorID:       m.CreatorID,
		Title:           m.Title,
		Description:     m.Description,
		Poster:          m.Poster,
		Director:        m.Director,
		Producer:        m.Producer,
		Singer:          m.Singer,
		Hero:            m.Hero,
		Heroine:         m.Heroine,
		TotalAmount:     m.TotalAmount.InexactFloat64(),
		InvestedAmount:  m.InvestedAmount.InexactFloat64(),
		StockPrice:      m.StockPrice.InexactFloat64(),
		AvailableStocks: m.AvailableStocks,
		RequiredAmount:  m.RequiredAmount().InexactFloat64(),
		FundedPercent:   m.FundedPercent().InexactFloat64(),
		MaxPurchasable:  m.MaxPurchasableStocks(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func newMovieResponses(movies []domain.Movie) []MovieResponse {
	var response = make([]MovieResponse, len(movies))
	for i := range movies {
		response[i] = newMovieResponse(&movies[i])
	}
	return response
}

type InvestmentResponse struct {
	ID           string         `json:"id"`
	MovieID      string         `json:"movieId"`
	MovieTitle   string         `json:"movieTitle"`
	InvestorID   string         `json:"investorId"`
	InvestorName string         `json:"investorName"`
	StockCount   int64          `json:"stockCount"`
	StockPrice   float64        `json:"stockPrice"`
	TotalAmount  float64        `json:"totalAmount"`
	CreatedAt    time.Time      `json:"createdAt"`
	Movie        *MovieResponse `json:"movie,omitempty"`
}

func newInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:           inv.ID,
		MovieID:      inv.MovieID,
		MovieTitle:   inv.MovieTitle,
		InvestorID:   inv.InvestorID,
		InvestorName: inv.InvestorName,
		StockCount:   inv.StockCount,
		StockPrice:   inv.StockPrice.InexactFloat64(),
		TotalAmount:  inv.TotalAmount.InexactFloat64(),
		CreatedAt:    inv.CreatedAt,
	}
}

func newInvestmentResponses(investments []domain.Investment) []InvestmentResponse {
	var response = make([]InvestmentResponse, len(investments))
	for i := range investments {
		response[i] = newInvestmentResponse(&investments[i])
	}
	return response
}

type TotalsResponse struct {
	Investors int     `json:"investors"`
	Amount    float64 `json:"amount"`
	Stocks    int64   `json:"stocks"`
}

func newTotalsResponse(t service.Totals) TotalsResponse {
	return TotalsResponse{
		Investors: t.Investors,
		Amount:    t.Amount.InexactFloat64(),
		Stocks:    t.Stocks,
	}
}

type MovieInvestmentsResponse struct {
	MovieID     string               `json:"movieId"`
	MovieTitle  string               `json:"movieTitle"`
	Totals      TotalsResponse       `json:"totals"`
	Investments []InvestmentResponse `json:"investments"`
}

type DashboardResponse struct {
	CreatorID string                     `json:"creatorId"`
	Movies    []MovieResponse            `json:"movies"`
	Totals    TotalsResponse             `json:"totals"`
	Groups    []MovieInvestmentsResponse `json:"groups"`
}

func newDashboardResponse(d *service.Dashboard) DashboardResponse {
	groups := make([]MovieInvestmentsResponse, len(d.Groups))
	for i, g := range d.Groups {
		groups[i] = MovieInvestmentsResponse{
			MovieID:     g.MovieID,
			MovieTitle:  g.MovieTitle,
			Totals:      newTotalsResponse(g.Totals),
			Investments: newInvestmentResponses(g.Investments),
		}
	}
	return DashboardResponse{
		CreatorID: d.CreatorID,
		Movies:    newMovieResponses(d.Movies),
		Totals:    newTotalsResponse(d.Totals),
		Groups:    groups,
	}
}
