package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	Name  string          `validate:"required"`
	Price decimal.Decimal `validate:"gte=0"`
}

func TestValidateStructNumericTagsOnDecimals(t *testing.T) {
	errs := ValidateStruct(&priced{Name: "ok", Price: decimal.NewFromInt(2)})
	assert.Empty(t, errs)

	errs = ValidateStruct(&priced{Name: "ok", Price: decimal.NewFromInt(-1)})
	require.Len(t, errs, 1)
	assert.Equal(t, "priced.Price", errs[0].FailedField)
	assert.Equal(t, "gte", errs[0].Tag)
}

func TestValidateStructCollectsEveryFailure(t *testing.T) {
	errs := ValidateStruct(&priced{Price: decimal.NewFromInt(-1)})
	require.Len(t, errs, 2)
	assert.Equal(t, "priced.Name", errs[0].FailedField)
	assert.Equal(t, "required", errs[0].Tag)
}
