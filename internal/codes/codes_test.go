package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		category model.Category
		code     string
		desc     string
	}{
		{model.CategoryCardPayment, "30000301000", "Kartova transakcia"},
		{model.CategoryTopup, "10000405000", "Prijata platba"},
		{model.CategoryFee, "40000605000", "Poplatok"},
		{model.CategoryTransfer, "20000405000", "Odchadzajuca platba"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.category)
		require.NoError(t, err, "Resolve(%s)", tt.category)
		assert.Equal(t, tt.code, got.Proprietary)
		assert.Equal(t, tt.desc, got.Description)
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("CRYPTO_AIRDROP")
	var uce *UnknownCategoryError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, model.Category("CRYPTO_AIRDROP"), uce.Category)
	assert.Contains(t, err.Error(), "CRYPTO_AIRDROP")
}

func TestResolve_CaseSensitive(t *testing.T) {
	_, err := Resolve("fee")
	assert.Error(t, err)
}

func TestFallback(t *testing.T) {
	got := Fallback("EXCHANGE")
	assert.Equal(t, FallbackCode, got.Proprietary)
	assert.Equal(t, "EXCHANGE", got.Description)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []model.Category{
		model.CategoryCardPayment,
		model.CategoryFee,
		model.CategoryTopup,
		model.CategoryTransfer,
	}, Categories())
}
