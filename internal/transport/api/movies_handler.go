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

const movieNotFoundMsg = "Movie not found"

type MoviesHandler struct {
	movieSvs MovieServicer
}

func NewMoviesHandler(movieSvs MovieServicer) *MoviesHandler {
	return &MoviesHandler{
		movieSvs: movieSvs,
	}
}

// Index GET RouteGroup + MoviesRoute. Параметр creatorId ограничивает выборку проектами создателя.
func (h *MoviesHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	var movies []domain.Movie
	var err error
	if creatorID := c.Query("creatorId"); creatorID != "" {
		movies, err = h.movieSvs.ListByCreator(ctx, creatorID)
	} else {
		movies, err = h.movieSvs.List(ctx)
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newMovieResponses(movies))
}

// Show GET RouteGroup + MovieRoute.
func (h *MoviesHandler) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	movie, err := h.movieSvs.Get(ctx, c.Param("id"))
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMovieResponse(movie))
}

type MovieCreateParams struct {
	CreatorID       string          `json:"creatorId"`
	Title           string          `binding:"required,max=255"       json:"title"`
	Description     string          `json:"description"`
	Poster          string          `json:"poster"`
	Director        string          `json:"director"`
	Producer        string          `json:"producer"`
	Singer          string          `json:"singer"`
	Hero            string          `json:"hero"`
	Heroine         string          `json:"heroine"`
	TotalAmount     decimal.Decimal `binding:"decimal_gt0"            json:"totalAmount"`
	StockPrice      decimal.Decimal `binding:"decimal_gt0"            json:"stockPrice"`
	AvailableStocks *int64          `binding:"omitempty,gte=0"        json:"availableStocks"`
}

// Create POST RouteGroup + MoviesRoute. Если запрос авторизован, создателем становится текущий юзер,
// и он должен иметь роль creator. Новый проект всегда начинается с нулевой собранной суммы.
func (h *MoviesHandler) Create(c *gin.Context) {
	var params MovieCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	if claims, ok := currentUser(c); ok {
		if domain.RoleType(claims.Role) != domain.RoleCreator {
			abortPublic(c, http.StatusForbidden, "Only creators can create movies")
			return
		}
		params.CreatorID = claims.ID
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	movie, err := h.movieSvs.Create(ctx, service.CreateMovieArgs{
		CreatorID:       params.CreatorID,
		Title:           params.Title,
		Description:     params.Description,
		Poster:          params.Poster,
		Director:        params.Director,
		Producer:        params.Producer,
		Singer:          params.Singer,
		Hero:            params.Hero,
		Heroine:         params.Heroine,
		TotalAmount:     params.TotalAmount,
		InvestedAmount:  decimal.Zero,
		StockPrice:      params.StockPrice,
		AvailableStocks: params.AvailableStocks,
	})
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMovieResponse(movie))
}

type MovieUpdateParams struct {
	Title           *string          `binding:"omitempty,min=1,max=255" json:"title"`
	Description     *string          `json:"description"`
	Poster          *string          `json:"poster"`
	Director        *string          `json:"director"`
	Producer        *string          `json:"producer"`
	Singer          *string          `json:"singer"`
	Hero            *string          `json:"hero"`
	Heroine         *string          `json:"heroine"`
	TotalAmount     *decimal.Decimal `binding:"omitempty,decimal_gt0"   json:"totalAmount"`
	StockPrice      *decimal.Decimal `binding:"omitempty,decimal_gt0"   json:"stockPrice"`
	AvailableStocks *int64           `binding:"omitempty,gte=0"         json:"availableStocks"`
}

// Update PUT RouteGroup + MovieRoute. Частичное обновление, собранная сумма не редактируется.
func (h *MoviesHandler) Update(c *gin.Context) {
	var params MovieUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	movieID := c.Param("id")
	if claims, ok := currentUser(c); ok {
		movie, err := h.movieSvs.Get(ctx, movieID)
		if err != nil {
			h.abortWithServiceError(c, err)
			return
		}
		if movie.CreatorID != claims.ID {
			abortPublic(c, http.StatusForbidden, "Only the creator can edit the movie")
			return
		}
	}

	movie, err := h.movieSvs.Update(ctx, movieID, service.UpdateMovieArgs{
		Title:           params.Title,
		Description:     params.Description,
		Poster:          params.Poster,
		Director:        params.Director,
		Producer:        params.Producer,
		Singer:          params.Singer,
		Hero:            params.Hero,
		Heroine:         params.Heroine,
		TotalAmount:     params.TotalAmount,
		StockPrice:      params.StockPrice,
		AvailableStocks: params.AvailableStocks,
	})
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMovieResponse(movie))
}

func (h *MoviesHandler) abortWithServiceError(c *gin.Context, err error) {
	var invalidErr *domain.InvalidMovieError
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		abortPublic(c, http.StatusNotFound, movieNotFoundMsg)
	case errors.As(err, &invalidErr):
		abortPublic(c, http.StatusUnprocessableEntity, invalidErr.Reason)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
