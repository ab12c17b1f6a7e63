package domain

import (
	"fmt"
	"strings"
)

// Signal names one of the four served predictions
type Signal string

const (
	SignalExpiration Signal = "expiration"
	SignalWasteRisk  Signal = "waste_risk"
	SignalDonation   Signal = "donation"
	SignalPriority   Signal = "priority"
)

// Level is a coarse bucket of a 0-100 score
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// EvaluationRequest is the inbound item description for a prediction
type EvaluationRequest struct {
	Category       string   `json:"category"`
	RestaurantType string   `json:"restaurant_type"`
	Quantity       *float64 `json:"quantity,omitempty"`
	PurchaseDate   string   `json:"purchase_date,omitempty"`
	ExpiryDate     string   `json:"expiry_date,omitempty"`
}

// ExpirationPrediction is the served days-until-expiry estimate
type ExpirationPrediction struct {
	PredictedDaysUntilExpiry float64 `json:"predicted_days_until_expiry"`
}

// WasteRiskPrediction is the served waste risk score
type WasteRiskPrediction struct {
	WasteRiskScore float64 `json:"waste_risk_score"`
	RiskLevel      Level   `json:"risk_level"`
}

// DonationPrediction is the served donation decision
type DonationPrediction struct {
	ShouldDonate        bool    `json:"should_donate"`
	DonationProbability float64 `json:"donation_probability"`
}

// PriorityPrediction is the served redistribution priority
type PriorityPrediction struct {
	PriorityScore float64 `json:"priority_score"`
	PriorityLevel Level   `json:"priority_level"`
}

// Evaluation is the union of all four served predictions from one feature build
type Evaluation struct {
	ExpirationPrediction
	WasteRiskPrediction
	DonationPrediction
	PriorityPrediction
	DaysRemaining int `json:"days_remaining"`
	// Failed lists signals whose values are unset because their predictor errored
	Failed []Signal `json:"failed_signals,omitempty"`
}

// HasFailed reports whether the named signal failed during evaluation
func (e *Evaluation) HasFailed(s Signal) bool {
	for _, f := range e.Failed {
		if f == s {
			return true
		}
	}
	return false
}

// SignalError records which sub-signal of an evaluation failed
type SignalError struct {
	Signal Signal
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Signal, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}

// FailedSignals formats a list of signals for messages
func FailedSignals(signals []Signal) string {
	names := make([]string, len(signals))
	for i, s := range signals {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
