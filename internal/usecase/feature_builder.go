package usecase

import (
	"time"

	"github.com/sharebite/backend/internal/domain"
)

// Fallbacks used when item dates are missing or unparseable
const (
	DefaultShelfLife     = 7
	DefaultDaysRemaining = 7
	DefaultQuantity      = 10.0
)

// Quantity thresholds shared by features, labels and blends
const (
	HighQuantity     = 30.0
	VeryHighQuantity = 50.0
)

// FeatureBuilder turns item attributes into the canonical FeatureVector.
// The training corpus and the serving path both build vectors through Build.
type FeatureBuilder struct {
	encoding domain.Encoding
}

// NewFeatureBuilder creates a builder using the given categorical encoding
func NewFeatureBuilder(encoding domain.Encoding) *FeatureBuilder {
	return &FeatureBuilder{encoding: encoding}
}

// Encoding returns the categorical encoding the builder was initialised with
func (b *FeatureBuilder) Encoding() domain.Encoding {
	return b.encoding
}

// Build derives the feature vector. reference supplies the calendar month and weekday.
func (b *FeatureBuilder) Build(
	category domain.Category,
	restaurantType domain.RestaurantType,
	quantity float64,
	daysRemaining int,
	shelfLife int,
	reference time.Time,
) domain.FeatureVector {
	categoryCode := float64(b.encoding.CategoryCode(category))
	wasteProbability := category.WasteProbability()
	dayOfWeek := domain.Weekday(reference)
	days := float64(daysRemaining)

	fv := domain.FeatureVector{
		CategoryEncoded:       categoryCode,
		RestaurantTypeEncoded: float64(b.encoding.RestaurantTypeCode(restaurantType)),
		Quantity:              quantity,
		DaysRemaining:         days,
		ShelfLife:             float64(shelfLife),
		Month:                 float64(reference.Month()),
		DayOfWeek:             float64(dayOfWeek),
		IsWeekend:             indicator(dayOfWeek >= 5),
		WasteProbability:      wasteProbability,
	}

	fv.QuantityExpiryInteraction = fv.Quantity * fv.DaysRemaining
	fv.CategoryWasteInteraction = fv.CategoryEncoded * fv.WasteProbability

	fv.IsPerishable = indicator(category.IsPerishable())
	fv.HighQuantity = indicator(quantity >= HighQuantity)
	fv.VeryHighQuantity = indicator(quantity >= VeryHighQuantity)
	fv.QuantityPerishableInteraction = fv.Quantity * fv.IsPerishable

	fv.IsExpired = indicator(daysRemaining < 0)
	fv.ExpiringToday = indicator(daysRemaining <= 1)
	fv.ExpiringSoon = indicator(daysRemaining <= 7)

	return fv
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
