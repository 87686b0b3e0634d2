package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

type InvestmentsHandler struct {
	investmentSvs InvestmentServicer
	querySvs      QueryServicer
}

func NewInvestmentsHandler(investmentSvs InvestmentServicer, querySvs QueryServicer) *InvestmentsHandler {
	return &InvestmentsHandler{
		investmentSvs: investmentSvs,
		querySvs:      querySvs,
	}
}

// InvestmentCreateParams stockPrice и totalAmount необязательны. stockPrice - цена, которую видел инвестор,
// totalAmount при наличии должен быть равен stockCount * stockPrice.
type InvestmentCreateParams struct {
	MovieID      string              `binding:"required" json:"movieId"`
	InvestorID   string              `json:"investorId"`
	InvestorName string              `json:"investorName"`
	StockCount   int64               `json:"stockCount"`
	StockPrice   decimal.NullDecimal `json:"stockPrice"`
	TotalAmount  decimal.NullDecimal `json:"totalAmount"`
}

// Create POST RouteGroup + InvestmentsRoute. Покупка акций проекта. Если запрос авторизован,
// инвестором становится текущий юзер.
func (h *InvestmentsHandler) Create(c *gin.Context) {
	var params InvestmentCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	if claims, ok := currentUser(c); ok {
		if domain.RoleType(claims.Role) != domain.RoleInvestor {
			abortPublic(c, http.StatusForbidden, "Only investors can invest")
			return
		}
		params.InvestorID = claims.ID
		params.InvestorName = claims.Username
	}
	if params.InvestorID == "" {
		abortPublic(c, http.StatusUnprocessableEntity, "investorId is required")
		return
	}

	if params.StockPrice.Valid && params.TotalAmount.Valid {
		expected := params.StockPrice.Decimal.Mul(decimal.NewFromInt(params.StockCount))
		if !expected.Equal(params.TotalAmount.Decimal) {
			abortPublic(c, http.StatusUnprocessableEntity, "totalAmount must equal stockCount * stockPrice")
			return
		}
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	res, err := h.investmentSvs.Purchase(ctx, service.PurchaseArgs{
		InvestorID:    params.InvestorID,
		InvestorName:  params.InvestorName,
		MovieID:       params.MovieID,
		StockCount:    params.StockCount,
		ExpectedPrice: params.StockPrice,
	})
	if err != nil {
		var limitErr *domain.QuantityLimitError
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			abortPublic(c, http.StatusNotFound, movieNotFoundMsg)
		case errors.As(err, &limitErr):
			abortPublic(c, http.StatusUnprocessableEntity, limitErr.Error())
		case errors.Is(err, domain.ErrQuantityExceedsLimit), errors.Is(err, domain.ErrInvalidQuantity):
			abortPublic(c, http.StatusUnprocessableEntity, "Invalid stock count")
		case errors.Is(err, domain.ErrPriceChanged):
			abortPublic(c, http.StatusConflict, "Stock price changed")
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	response := newInvestmentResponse(res.Investment)
	movie := newMovieResponse(res.Movie)
	response.Movie = &movie
	c.JSON(http.StatusOK, response)
}

// Index GET RouteGroup + InvestmentsRoute. investorId - портфель инвестора, creatorId - инвестиции
// в проекты создателя, без параметров - все инвестиции.
func (h *InvestmentsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	var investments []domain.Investment
	var err error
	if investorID := c.Query("investorId"); investorID != "" {
		investments, err = h.querySvs.InvestmentsForInvestor(ctx, investorID)
	} else {
		investments, err = h.querySvs.InvestmentsForCreator(ctx, c.Query("creatorId"))
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newInvestmentResponses(investments))
}

// Dashboard GET RouteGroup + CreatorDashboardRoute.
func (h *InvestmentsHandler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	dashboard, err := h.querySvs.CreatorDashboard(ctx, c.Param("id"))
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, newDashboardResponse(dashboard))
}
