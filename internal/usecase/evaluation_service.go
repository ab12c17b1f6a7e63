package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sharebite/backend/internal/domain"
)

// EvaluationRecorder receives evaluation outcomes for metrics
type EvaluationRecorder interface {
	RecordSignal(ctx context.Context, signal domain.Signal, ok bool)
	RecordEvaluation(ctx context.Context, elapsed time.Duration)
}

// EvaluationServiceConfig holds configuration for the evaluation service
type EvaluationServiceConfig struct {
	Clock    func() time.Time
	Logger   *slog.Logger
	Recorder EvaluationRecorder
}

// EvaluationService serves the four blended predictions for an item
type EvaluationService struct {
	registry *ModelRegistry
	clock    func() time.Time
	logger   *slog.Logger
	recorder EvaluationRecorder
}

// NewEvaluationService creates a new evaluation service backed by registry
func NewEvaluationService(registry *ModelRegistry, config EvaluationServiceConfig) *EvaluationService {
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EvaluationService{
		registry: registry,
		clock:    clock,
		logger:   logger,
		recorder: config.Recorder,
	}
}

// Ready reports whether predictions can be served
func (s *EvaluationService) Ready() bool {
	return s.registry.Ready()
}

// Evaluate builds one feature vector and returns all four served values.
// When some predictors fail, the rest are still returned alongside a joined
// error of *domain.SignalError values.
func (s *EvaluationService) Evaluate(ctx context.Context, request *domain.EvaluationRequest) (*domain.Evaluation, error) {
	start := s.clock()
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	models, err := s.registry.snapshot()
	if err != nil {
		return nil, err
	}

	item, err := resolveItem(request, start)
	if err != nil {
		return nil, err
	}

	features := models.builder.Build(item.category, item.restaurantType, item.quantity, item.daysRemaining, item.shelfLife, start)
	rules := NewRuleSignals(item.category, item.quantity, item.daysRemaining)
	predictors := models.predictors

	evaluation := &domain.Evaluation{DaysRemaining: item.daysRemaining}
	var errs []error
	fail := func(signal domain.Signal, err error) {
		evaluation.Failed = append(evaluation.Failed, signal)
		errs = append(errs, &domain.SignalError{Signal: signal, Err: fmt.Errorf("%w: %v", domain.ErrPredictorFailure, err)})
		s.record(ctx, signal, false)
	}

	if item.exactDays != nil {
		evaluation.ExpirationPrediction.PredictedDaysUntilExpiry = BlendExpiration(item.exactDays, 0)
		s.record(ctx, domain.SignalExpiration, true)
	} else if estimate, err := predictors.Expiration.Predict(ctx, features); err != nil {
		fail(domain.SignalExpiration, err)
	} else {
		evaluation.ExpirationPrediction.PredictedDaysUntilExpiry = BlendExpiration(nil, estimate)
		s.record(ctx, domain.SignalExpiration, true)
	}

	if estimate, err := predictors.WasteRisk.Predict(ctx, features); err != nil {
		fail(domain.SignalWasteRisk, err)
	} else {
		evaluation.WasteRiskPrediction = BlendWasteRisk(estimate, rules)
		s.record(ctx, domain.SignalWasteRisk, true)
	}

	if probability, err := predictors.Donation.PredictProbability(ctx, features); err != nil {
		fail(domain.SignalDonation, err)
	} else {
		evaluation.DonationPrediction = BlendDonation(probability, rules)
		s.record(ctx, domain.SignalDonation, true)
	}

	if estimate, err := predictors.Priority.Predict(ctx, features); err != nil {
		fail(domain.SignalPriority, err)
	} else {
		evaluation.PriorityPrediction = BlendPriority(estimate, rules)
		s.record(ctx, domain.SignalPriority, true)
	}

	if s.recorder != nil {
		s.recorder.RecordEvaluation(ctx, s.clock().Sub(start))
	}

	if len(errs) > 0 {
		s.logger.Warn("evaluation partially failed",
			"failed_signals", domain.FailedSignals(evaluation.Failed),
			"category", item.category,
			"days_remaining", item.daysRemaining)
		return evaluation, errors.Join(errs...)
	}
	return evaluation, nil
}

func (s *EvaluationService) record(ctx context.Context, signal domain.Signal, ok bool) {
	if s.recorder != nil {
		s.recorder.RecordSignal(ctx, signal, ok)
	}
}

// resolvedItem is an evaluation request with fallbacks applied
type resolvedItem struct {
	category       domain.Category
	restaurantType domain.RestaurantType
	quantity       float64
	daysRemaining  int
	shelfLife      int
	// exactDays is set when a parseable expiry date was supplied
	exactDays *int
}

func resolveItem(request *domain.EvaluationRequest, now time.Time) (resolvedItem, error) {
	category, _ := domain.ParseCategory(request.Category)
	restaurantType, _ := domain.ParseRestaurantType(request.RestaurantType)

	quantity := DefaultQuantity
	if request.Quantity != nil {
		quantity = *request.Quantity
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return resolvedItem{}, fmt.Errorf("%w: quantity must be a non-negative number", domain.ErrInvalidRequest)
	}

	item := resolvedItem{
		category:       category,
		restaurantType: restaurantType,
		quantity:       quantity,
		daysRemaining:  DefaultDaysRemaining,
		shelfLife:      DefaultShelfLife,
	}

	// Each date falls back on its own: an expiry date alone still sets days_remaining.
	expiry, hasExpiry := parseDate(request.ExpiryDate)
	if hasExpiry {
		days := domain.DaysBetween(now, expiry)
		item.daysRemaining = days
		item.exactDays = &days

		if purchase, ok := parseDate(request.PurchaseDate); ok {
			if shelfLife := domain.DaysBetween(purchase, expiry); shelfLife > 0 {
				item.shelfLife = shelfLife
			}
		}
	}

	return item, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate accepts a calendar date or timestamp; empty and malformed input report false
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
