package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureColumnsMatchStruct(t *testing.T) {
	typ := reflect.TypeOf(FeatureVector{})
	require.Equal(t, typ.NumField(), len(FeatureColumns))

	for i, col := range FeatureColumns {
		assert.Equal(t, col, typ.Field(i).Tag.Get("json"), "field %d", i)
	}
}

func TestFeatureVectorValuesOrder(t *testing.T) {
	fv := FeatureVector{CategoryEncoded: 3, Quantity: 12, ExpiringSoon: 1}
	values := fv.Values()

	require.Len(t, values, len(FeatureColumns))
	assert.Equal(t, 3.0, values[0])
	assert.Equal(t, 12.0, values[2])
	assert.Equal(t, 1.0, values[len(values)-1])

	m := fv.Map()
	assert.Equal(t, 12.0, m["quantity"])
	assert.Equal(t, 1.0, m["expiring_soon"])
	assert.Len(t, m, len(FeatureColumns))
}

func TestCheckColumns(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		assert.NoError(t, CheckColumns(append([]string(nil), FeatureColumns...)))
	})

	t.Run("missing column", func(t *testing.T) {
		err := CheckColumns(FeatureColumns[:len(FeatureColumns)-1])
		assert.True(t, errors.Is(err, ErrSchemaMismatch))
	})

	t.Run("reordered columns", func(t *testing.T) {
		cols := append([]string(nil), FeatureColumns...)
		cols[0], cols[1] = cols[1], cols[0]
		err := CheckColumns(cols)
		assert.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Contains(t, err.Error(), "column 0")
	})
}

func TestDefaultEncoding(t *testing.T) {
	enc := DefaultEncoding()
	require.NoError(t, enc.Validate())

	assert.Equal(t, 0, enc.CategoryCode(CategoryFruits))
	assert.Equal(t, 9, enc.CategoryCode(CategoryCannedGoods))
	assert.Equal(t, 0, enc.RestaurantTypeCode(RestaurantFastFood))
	assert.Equal(t, 5, enc.RestaurantTypeCode(RestaurantBakery))

	// unmapped values take the default's code
	assert.Equal(t, enc.CategoryCode(DefaultCategory), enc.CategoryCode(Category("Moon Rocks")))
	assert.Equal(t, enc.RestaurantTypeCode(DefaultRestaurantType), enc.RestaurantTypeCode(RestaurantType("Moon Base")))
}

func TestEncodingValidate(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		enc := DefaultEncoding()
		delete(enc.Categories, CategoryMeat)
		assert.ErrorIs(t, enc.Validate(), ErrSchemaMismatch)
	})

	t.Run("duplicate code", func(t *testing.T) {
		enc := DefaultEncoding()
		enc.RestaurantTypes[RestaurantCafe] = enc.RestaurantTypes[RestaurantBuffet]
		assert.ErrorIs(t, enc.Validate(), ErrSchemaMismatch)
	})

	t.Run("custom permutation is valid", func(t *testing.T) {
		enc := DefaultEncoding()
		enc.Categories[CategoryFruits], enc.Categories[CategoryDairy] = enc.Categories[CategoryDairy], enc.Categories[CategoryFruits]
		assert.NoError(t, enc.Validate())
	})
}

func TestEvaluationHasFailed(t *testing.T) {
	e := &Evaluation{Failed: []Signal{SignalDonation}}
	assert.True(t, e.HasFailed(SignalDonation))
	assert.False(t, e.HasFailed(SignalPriority))
	assert.Equal(t, "donation, priority", FailedSignals([]Signal{SignalDonation, SignalPriority}))
}

func TestSignalErrorUnwraps(t *testing.T) {
	err := error(&SignalError{Signal: SignalWasteRisk, Err: ErrPredictorFailure})
	assert.ErrorIs(t, err, ErrPredictorFailure)
	assert.Equal(t, "waste_risk: predictor failed", err.Error())

	var se *SignalError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, SignalWasteRisk, se.Signal)
}
