package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharebite/backend/internal/domain"
)

const (
	serviceName    = "sharebite-ml-api"
	serviceVersion = "1.0.0"
)

// Evaluator serves the combined evaluation
type Evaluator interface {
	Evaluate(ctx context.Context, request *domain.EvaluationRequest) (*domain.Evaluation, error)
	Ready() bool
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(evaluator Evaluator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{evaluator: evaluator, logger: logger}
}

func (h *Handler) ready() bool {
	return h.evaluator != nil && h.evaluator.Ready()
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       serviceName,
		"version":       serviceVersion,
		"models_loaded": h.ready(),
	})
}

// Readiness reports 503 until all four predictors are loaded
func (h *Handler) Readiness(c *gin.Context) {
	if !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

// PredictExpiration serves the days-remaining estimate
func (h *Handler) PredictExpiration(c *gin.Context) {
	h.project(c, domain.SignalExpiration, func(e *domain.Evaluation) gin.H {
		days := e.PredictedDaysUntilExpiry
		return gin.H{
			"predicted_days_until_expiry": days,
			"message":                     fmt.Sprintf("Predicted to expire in %.1f days", days),
		}
	})
}

// PredictWasteRisk serves the waste risk score and level
func (h *Handler) PredictWasteRisk(c *gin.Context) {
	h.project(c, domain.SignalWasteRisk, func(e *domain.Evaluation) gin.H {
		return gin.H{
			"waste_risk_score": e.WasteRiskScore,
			"risk_level":       e.RiskLevel,
			"message":          fmt.Sprintf("Waste risk: %s (%.1f%%)", e.RiskLevel, e.WasteRiskScore),
		}
	})
}

// PredictDonation serves the donation decision and probability
func (h *Handler) PredictDonation(c *gin.Context) {
	h.project(c, domain.SignalDonation, func(e *domain.Evaluation) gin.H {
		message := "Not recommended for donation"
		if e.ShouldDonate {
			message = "Recommended for donation"
		}
		return gin.H{
			"should_donate":        e.ShouldDonate,
			"donation_probability": e.DonationProbability,
			"message":              message,
		}
	})
}

// PredictPriority serves the priority score and level
func (h *Handler) PredictPriority(c *gin.Context) {
	h.project(c, domain.SignalPriority, func(e *domain.Evaluation) gin.H {
		return gin.H{
			"priority_score": e.PriorityScore,
			"priority_level": e.PriorityLevel,
			"message":        fmt.Sprintf("Priority: %s (%.1f)", e.PriorityLevel, e.PriorityScore),
		}
	})
}

// PredictAll serves all four signals from one evaluation
func (h *Handler) PredictAll(c *gin.Context) {
	evaluation, ok := h.evaluate(c)
	if !ok {
		return
	}

	partial := len(evaluation.Failed) > 0
	status := http.StatusOK
	body := gin.H{"success": !partial}
	if partial {
		status = http.StatusBadGateway
		body["error"] = "some predictions failed"
		body["failed_signals"] = evaluation.Failed
	}
	if !evaluation.HasFailed(domain.SignalExpiration) {
		body["predicted_days_until_expiry"] = evaluation.PredictedDaysUntilExpiry
	}
	if !evaluation.HasFailed(domain.SignalWasteRisk) {
		body["waste_risk_score"] = evaluation.WasteRiskScore
		body["risk_level"] = evaluation.RiskLevel
	}
	if !evaluation.HasFailed(domain.SignalDonation) {
		body["should_donate"] = evaluation.ShouldDonate
		body["donation_probability"] = evaluation.DonationProbability
	}
	if !evaluation.HasFailed(domain.SignalPriority) {
		body["priority_score"] = evaluation.PriorityScore
		body["priority_level"] = evaluation.PriorityLevel
	}
	body["days_remaining"] = evaluation.DaysRemaining

	c.JSON(status, body)
}

// project runs the combined evaluation and renders one signal of it
func (h *Handler) project(c *gin.Context, signal domain.Signal, view func(*domain.Evaluation) gin.H) {
	evaluation, ok := h.evaluate(c)
	if !ok {
		return
	}

	if evaluation.HasFailed(signal) {
		c.JSON(http.StatusBadGateway, gin.H{
			"success":        false,
			"error":          fmt.Sprintf("%s prediction failed", signal),
			"failed_signals": []domain.Signal{signal},
		})
		return
	}

	body := view(evaluation)
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

// evaluate binds the request and runs the evaluator. It writes the error response
// and reports false unless an evaluation, possibly partial, is available.
func (h *Handler) evaluate(c *gin.Context) (*domain.Evaluation, bool) {
	if !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Models not loaded",
		})
		return nil, false
	}

	var request domain.EvaluationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return nil, false
	}

	evaluation, err := h.evaluator.Evaluate(c.Request.Context(), &request)
	switch {
	case err == nil:
		return evaluation, true
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrModelsNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Models not loaded"})
	case evaluation != nil:
		// partial failure; evaluation.Failed names the missing signals
		h.logger.Warn("partial evaluation", "error", err, "request_id", c.GetString(requestIDKey))
		return evaluation, true
	default:
		h.logger.Error("evaluation failed", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
	return nil, false
}
