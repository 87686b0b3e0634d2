package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovie_MaxPurchasableStocks(t *testing.T) {
	cases := []struct {
		name            string
		movie           Movie
		wantAffordable  int64
		wantPurchasable int64
	}{
		{
			name: "gap limits purchase",
			movie: Movie{
				TotalAmount:     decimal.NewFromInt(1000000),
				InvestedAmount:  decimal.NewFromInt(750000),
				StockPrice:      decimal.NewFromInt(100),
				AvailableStocks: 3000,
			},
			wantAffordable:  2500,
			wantPurchasable: 2500,
		},
		{
			name: "stocks limit purchase",
			movie: Movie{
				TotalAmount:     decimal.NewFromInt(1000000),
				InvestedAmount:  decimal.NewFromInt(750000),
				StockPrice:      decimal.NewFromInt(100),
				AvailableStocks: 10,
			},
			wantAffordable:  2500,
			wantPurchasable: 10,
		},
		{
			name: "floor division",
			movie: Movie{
				TotalAmount:     decimal.NewFromInt(750000),
				InvestedAmount:  decimal.NewFromInt(200000),
				StockPrice:      decimal.NewFromInt(75),
				AvailableStocks: 100000,
			},
			wantAffordable:  7333,
			wantPurchasable: 7333,
		},
		{
			name: "fully funded",
			movie: Movie{
				TotalAmount:     decimal.NewFromInt(100),
				InvestedAmount:  decimal.NewFromInt(100),
				StockPrice:      decimal.NewFromInt(10),
				AvailableStocks: 5,
			},
			wantAffordable:  0,
			wantPurchasable: 0,
		},
		{
			name: "zero price",
			movie: Movie{
				TotalAmount:     decimal.NewFromInt(100),
				StockPrice:      decimal.Zero,
				AvailableStocks: 5,
			},
			wantAffordable:  0,
			wantPurchasable: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantAffordable, tc.movie.MaxAffordableStocks())
			assert.Equal(t, tc.wantPurchasable, tc.movie.MaxPurchasableStocks())
		})
	}
}

func TestMovie_FundedPercent(t *testing.T) {
	m := Movie{TotalAmount: decimal.NewFromInt(750000), InvestedAmount: decimal.NewFromInt(200000)}
	assert.True(t, decimal.RequireFromString("26.67").Equal(m.FundedPercent()))

	assert.True(t, decimal.Zero.Equal(Movie{}.FundedPercent()))
}

func TestMovie_Validate(t *testing.T) {
	valid := Movie{
		CreatorID:      "creator1",
		Title:          "Epic Adventure",
		TotalAmount:    decimal.NewFromInt(1000),
		InvestedAmount: decimal.NewFromInt(100),
		StockPrice:     decimal.NewFromInt(10),
	}
	require.NoError(t, valid.Validate())

	overFunded := valid
	overFunded.InvestedAmount = decimal.NewFromInt(1001)

	noPrice := valid
	noPrice.StockPrice = decimal.Zero

	noTitle := valid
	noTitle.Title = ""

	noCreator := valid
	noCreator.CreatorID = ""

	for _, m := range []Movie{overFunded, noPrice, noTitle, noCreator} {
		err := m.Validate()
		require.ErrorIs(t, err, ErrInvalidMovie)

		var invalidErr *InvalidMovieError
		require.True(t, errors.As(err, &invalidErr))
		assert.NotEmpty(t, invalidErr.Reason)
	}
}

func TestQuantityLimitError(t *testing.T) {
	err := NewQuantityLimitError("1", 2501, 2500)
	require.ErrorIs(t, err, ErrQuantityExceedsLimit)
	assert.Contains(t, err.Error(), "2500")
}
