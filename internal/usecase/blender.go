package usecase

import (
	"math"

	"github.com/sharebite/backend/internal/domain"
)

// Blend weights and thresholds
const (
	wastePredictorWeight    = 0.7
	wasteRuleWeight         = 0.3
	donationPredictorWeight = 0.8
	donationRuleWeight      = 0.2
	priorityPredictorWeight = 0.8
	priorityUrgencyWeight   = 0.2

	// DonationThreshold sits below 0.5 to bias serving toward donating
	DonationThreshold = 0.45
)

// RuleSignals is the rule vocabulary evaluated against the live reference date
type RuleSignals struct {
	DaysRemaining    int
	Quantity         float64
	WasteProbability float64
	IsPerishable     bool
	UrgencyFactor    float64
	QuantityFactor   float64
	RuleWasteRisk    float64
	DonationScore    float64
}

// NewRuleSignals computes every rule term once for a request
func NewRuleSignals(category domain.Category, quantity float64, daysRemaining int) RuleSignals {
	rs := RuleSignals{
		DaysRemaining:    daysRemaining,
		Quantity:         quantity,
		WasteProbability: category.WasteProbability(),
		IsPerishable:     category.IsPerishable(),
		UrgencyFactor:    UrgencyFactor(daysRemaining),
		QuantityFactor:   math.Min(1, quantity/100),
	}
	rs.RuleWasteRisk = RuleWasteRisk(rs.WasteProbability, rs.UrgencyFactor, rs.QuantityFactor)
	rs.DonationScore = DonationRuleScore(daysRemaining, quantity, rs.IsPerishable)
	return rs
}

// UrgencyFactor maps days remaining to a serving-time urgency in [0.1, 1]
func UrgencyFactor(daysRemaining int) float64 {
	switch {
	case daysRemaining <= 0:
		return 1.0
	case daysRemaining <= 1:
		return 0.95
	case daysRemaining <= 3:
		return 0.85
	case daysRemaining <= 7:
		return 0.70
	default:
		return math.Max(0.1, 1-float64(daysRemaining)/30)
	}
}

// RuleWasteRisk is the rule-based waste estimate blended with the predictor
func RuleWasteRisk(wasteProbability, urgencyFactor, quantityFactor float64) float64 {
	adjusted := wasteProbability * 100 * (1 + urgencyFactor*0.5) * (1 + quantityFactor*0.3)
	return clamp(adjusted, 0, 100)
}

// BlendExpiration trusts an exact calendar difference over the predictor estimate
func BlendExpiration(exactDays *int, estimate float64) float64 {
	if exactDays != nil {
		return float64(*exactDays)
	}
	return finite(estimate)
}

// BlendWasteRisk combines the predictor estimate with the rule estimate and urgency floors
func BlendWasteRisk(estimate float64, rs RuleSignals) domain.WasteRiskPrediction {
	combined := wastePredictorWeight*clamp(estimate, 0, 100) + wasteRuleWeight*rs.RuleWasteRisk

	var risk float64
	switch days := rs.DaysRemaining; {
	case days <= 0:
		risk = 100
	case days <= 1:
		risk = math.Max(combined, 80)
	case days <= 3:
		risk = math.Max(combined*1.3, 60)
	case days <= 7:
		risk = math.Max(combined*1.2, 40)
	default:
		risk = combined
	}

	risk = clamp(risk, 0, 100)
	return domain.WasteRiskPrediction{WasteRiskScore: risk, RiskLevel: RiskLevel(risk)}
}

// DonationRuleScore grades how strongly the rules favour donating, in [0, 1]
func DonationRuleScore(daysRemaining int, quantity float64, isPerishable bool) float64 {
	var score float64
	switch {
	case daysRemaining < 0 && daysRemaining >= -2:
		// recently expired, potentially still safe
		score = 0.90
	case daysRemaining < 0:
		score = 0.70
	case daysRemaining <= 0:
		score = 1.0
	case daysRemaining <= 1:
		score = 0.95
	case daysRemaining <= 3 && quantity >= 10:
		score = 0.85
	case daysRemaining <= 7 && quantity >= 20:
		score = 0.75
	}

	switch {
	case quantity >= VeryHighQuantity:
		score = math.Max(score, 0.65)
	case quantity >= HighQuantity && isPerishable && daysRemaining >= 5:
		score = math.Max(score, 0.55)
	case quantity >= 20 && isPerishable && daysRemaining >= 7:
		score = math.Max(score, 0.50)
	}

	if isPerishable && daysRemaining <= 7 {
		score = math.Max(score, 0.60)
	}
	return score
}

// BlendDonation weights the predictor probability against the rule score
func BlendDonation(probability float64, rs RuleSignals) domain.DonationPrediction {
	combined := donationPredictorWeight*clamp(probability, 0, 1) + donationRuleWeight*rs.DonationScore
	combined = clamp(combined, 0, 1)
	return domain.DonationPrediction{
		ShouldDonate:        combined >= DonationThreshold,
		DonationProbability: combined,
	}
}

// BlendPriority overrides the predictor for urgent items and blends it otherwise
func BlendPriority(estimate float64, rs RuleSignals) domain.PriorityPrediction {
	q := rs.Quantity

	var score float64
	switch days := rs.DaysRemaining; {
	case days <= 0:
		score = 100
	case days <= 1:
		score = 90 + math.Min(10, q/10)
	case days <= 3:
		score = 75 + math.Min(15, q/10)
	case days <= 7:
		score = 60 + math.Min(15, q/10)
	default:
		score = priorityPredictorWeight*clamp(estimate, 0, 100) +
			priorityUrgencyWeight*(rs.UrgencyFactor*100) +
			math.Min(10, q/20)
	}

	score = clamp(score, 0, 100)
	return domain.PriorityPrediction{PriorityScore: score, PriorityLevel: PriorityLevel(score)}
}

// RiskLevel buckets a waste risk score
func RiskLevel(score float64) domain.Level {
	switch {
	case score < 30:
		return domain.LevelLow
	case score < 70:
		return domain.LevelMedium
	default:
		return domain.LevelHigh
	}
}

// PriorityLevel buckets a priority score
func PriorityLevel(score float64) domain.Level {
	switch {
	case score < 40:
		return domain.LevelLow
	case score < 70:
		return domain.LevelMedium
	default:
		return domain.LevelHigh
	}
}

// clamp bounds v to [lo, hi]; NaN collapses to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
