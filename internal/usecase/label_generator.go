package usecase

import (
	"math"

	"github.com/sharebite/backend/internal/domain"
)

// Label generation probabilities
const (
	expiredShareOfWaste      = 0.7
	proactiveDonationChance  = 0.15
	proactiveDonationMinDays = 5
)

// EffectiveWasteProbability scales the category's base probability by the venue's waste factor
func EffectiveWasteProbability(category domain.Category, restaurantType domain.RestaurantType) float64 {
	return category.WasteProbability() * (1 + restaurantType.Profile().WasteFactor)
}

// GenerateLabels produces the ground-truth labels for one corpus item.
// All randomness comes from rng; the same seeded source yields the same labels.
func GenerateLabels(in domain.LabelInput, rng domain.RandomSource) domain.Labels {
	var labels domain.Labels

	wasteProbability := EffectiveWasteProbability(in.Category, in.RestaurantType)
	willBeWasted := rng.Float64() < wasteProbability

	switch {
	case willBeWasted && rng.Float64() < expiredShareOfWaste:
		labels.FinalStatus = domain.StatusExpired
	case willBeWasted:
		labels.FinalStatus = domain.StatusDonated
		labels.WasDonated = true
	default:
		labels.FinalStatus = domain.StatusConsumed
	}

	// High-quantity items with shelf life left are sometimes donated proactively
	if !labels.WasDonated && in.Quantity >= HighQuantity && in.DaysUntilExpiry >= proactiveDonationMinDays {
		if rng.Float64() < proactiveDonationChance {
			labels.WasDonated = true
			labels.FinalStatus = domain.StatusDonated
		}
	}

	labels.WillExpire = labels.FinalStatus == domain.StatusExpired
	labels.Status = shelfStatus(in.DaysUntilExpiry)
	labels.PriorityScore = PriorityLabel(in.DaysUntilExpiry, in.Quantity)
	labels.ShouldDonate = ShouldDonateLabel(labels.WasDonated, in.DaysRemaining, in.Quantity, in.Category.IsPerishable())
	labels.WasteRisk = WasteRiskLabel(in.Category.WasteProbability(), in.DaysRemaining, in.Quantity)

	return labels
}

// PriorityLabel tiers the training priority by days until expiry from purchase
func PriorityLabel(daysUntilExpiry int, quantity float64) float64 {
	bonus := math.Min(quantity/10, 10)

	var score float64
	switch {
	case daysUntilExpiry <= 0:
		score = 100
	case daysUntilExpiry <= 1:
		score = 90 + bonus
	case daysUntilExpiry <= 3:
		score = 70 + bonus
	case daysUntilExpiry <= 7:
		score = 50 + bonus
	default:
		score = 30 + bonus
	}
	return math.Min(score, 100)
}

// ShouldDonateLabel is the boolean rule union used as the donation training target
func ShouldDonateLabel(wasDonated bool, daysRemaining int, quantity float64, isPerishable bool) bool {
	return wasDonated ||
		daysRemaining <= 7 ||
		(quantity >= HighQuantity && isPerishable) ||
		quantity >= VeryHighQuantity ||
		(daysRemaining < 0 && isPerishable)
}

// UrgencyMultiplier scales the training waste risk by days remaining
func UrgencyMultiplier(daysRemaining int) float64 {
	switch {
	case daysRemaining < 0:
		return 2.0
	case daysRemaining <= 1:
		return 1.5
	case daysRemaining <= 3:
		return 1.3
	case daysRemaining <= 7:
		return 1.2
	default:
		return 1.0
	}
}

// WasteRiskLabel computes the training waste risk target in [0, 100]
func WasteRiskLabel(wasteProbability float64, daysRemaining int, quantity float64) float64 {
	quantityFactor := 1 + (quantity/100)*0.3
	return clamp(wasteProbability*100*UrgencyMultiplier(daysRemaining)*quantityFactor, 0, 100)
}

func shelfStatus(daysUntilExpiry int) domain.ShelfStatus {
	switch {
	case daysUntilExpiry < 0:
		return domain.ShelfExpired
	case daysUntilExpiry <= 3:
		return domain.ShelfExpiringSoon
	default:
		return domain.ShelfActive
	}
}
