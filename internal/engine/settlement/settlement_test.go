package settlement_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportshub/internal/engine/settlement"
	"sportshub/shared/failure"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestSettle(t *testing.T) {
	tests := []struct {
		amount      string
		rate        string
		wantFee     string
		wantEarning string
	}{
		{amount: "80", rate: "0.15", wantFee: "12.00", wantEarning: "68.00"},
		{amount: "100", rate: "0.20", wantFee: "20.00", wantEarning: "80.00"},
		{amount: "33.33", rate: "0.15", wantFee: "5.00", wantEarning: "28.33"},
		{amount: "0.03", rate: "0.15", wantFee: "0.00", wantEarning: "0.03"},
		{amount: "12.35", rate: "0.20", wantFee: "2.47", wantEarning: "9.88"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"@"+tt.rate, func(t *testing.T) {
			split, err := settlement.Settle(d(tt.amount), d(tt.rate))
			require.NoError(t, err)

			assert.Equal(t, tt.wantFee, split.AdminFee.StringFixed(2))
			assert.Equal(t, tt.wantEarning, split.ClubEarning.StringFixed(2))
			assert.True(t, split.AdminFee.Add(split.ClubEarning).Equal(split.Amount))
			assert.True(t, d(tt.rate).Equal(split.Rate))
		})
	}
}

func TestSettle_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5"} {
		_, err := settlement.Settle(d(amount), d("0.15"))
		assert.Equal(t, failure.ReasonInvalidAmount, failure.GetReason(err))
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "invalid amount")
	}
}

func TestPolicy_Resolve(t *testing.T) {
	policy, err := settlement.NewPolicy("0.15", []string{"0.15", "0.20"})
	require.NoError(t, err)

	rate, err := policy.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.15", rate.String())

	zero := decimal.Zero
	rate, err = policy.Resolve(&zero)
	require.NoError(t, err)
	assert.Equal(t, "0.15", rate.String())

	twenty := d("0.2")
	rate, err = policy.Resolve(&twenty)
	require.NoError(t, err)
	assert.True(t, rate.Equal(d("0.20")))

	odd := d("0.30")
	_, err = policy.Resolve(&odd)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	_, err = settlement.NewPolicy("abc", nil)
	assert.Error(t, err)
}
