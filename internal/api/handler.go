package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/estimate"
	"premium-estimator/internal/models"
	"premium-estimator/internal/presentation"
	"premium-estimator/internal/repository"
)

// Estimator is satisfied by *estimate.Service.
type Estimator interface {
	Estimate(ctx context.Context, raw map[string]interface{}, theme string) (*estimate.Result, error)
}

// QuoteReader is satisfied by *repository.QuoteRepository.
type QuoteReader interface {
	GetByRequestID(ctx context.Context, requestID string) (models.Quote, error)
}

// EstimatePublisher starts the estimate process. *camunda.Client satisfies it.
type EstimatePublisher interface {
	PublishEstimateRequest(ctx context.Context, processID string, variables map[string]interface{}) (int64, error)
}

// AsyncEstimateRequest starts an estimate in the workflow engine. The result
// is delivered by the notification step.
type AsyncEstimateRequest struct {
	ApplicationData map[string]interface{} `json:"applicationData" binding:"required"`
	Theme           string                 `json:"theme"`
	RecipientEmail  string                 `json:"recipientEmail" binding:"omitempty,email"`
	RecipientPhone  string                 `json:"recipientPhone" binding:"omitempty,e164"`
}

type AsyncEstimateResponse struct {
	RequestID          string `json:"requestId"`
	ProcessInstanceKey int64  `json:"processInstanceKey"`
}

type EstimateHandler struct {
	estimator Estimator
	quotes    QuoteReader
	publisher EstimatePublisher
	processID string
	logger    logger.Logger
}

func NewEstimateHandler(estimator Estimator, quotes QuoteReader, publisher EstimatePublisher, processID string, log logger.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
		quotes:    quotes,
		publisher: publisher,
		processID: processID,
		logger:    log,
	}
}

func (h *EstimateHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.POST("/estimates", h.CreateEstimate)
	v1.GET("/themes", h.ListThemes)

	if h.quotes != nil {
		v1.GET("/quotes/:requestId", h.GetQuote)
	}
	if h.publisher != nil {
		v1.POST("/estimates/async", h.CreateEstimateAsync)
	}
}

// CreateEstimate answers 200 with the success view, 502 with the error view
// when the premium model failed, and 400 for bad input.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeError(c, errors.NewProfileValidationFailedError("malformed JSON body: "+err.Error(), nil))
		return
	}

	res, err := h.estimator.Estimate(c.Request.Context(), raw, c.Query("theme"))
	if err != nil {
		writeError(c, err)
		return
	}

	if res.PredictionErr != nil {
		c.JSON(http.StatusBadGateway, res.View)
		return
	}
	c.JSON(http.StatusOK, res.View)
}

func (h *EstimateHandler) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": presentation.ThemeNames()})
}

func (h *EstimateHandler) GetQuote(c *gin.Context) {
	q, err := h.quotes.GetByRequestID(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		if stderrors.Is(err, repository.ErrQuoteNotFound) {
			writeError(c, errors.NewResourceNotFoundError("quote", c.Param("requestId")))
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// CreateEstimateAsync answers 202 once the process instance exists.
func (h *EstimateHandler) CreateEstimateAsync(c *gin.Context) {
	var req AsyncEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.NewProfileValidationFailedError(err.Error(), nil))
		return
	}
	if req.Theme != "" {
		if _, err := presentation.LookupTheme(req.Theme); err != nil {
			writeError(c, err)
			return
		}
	}

	requestID := uuid.New().String()
	key, err := h.publisher.PublishEstimateRequest(c.Request.Context(), h.processID, map[string]interface{}{
		"requestId":       requestID,
		"applicationData": req.ApplicationData,
		"theme":           req.Theme,
		"recipientEmail":  req.RecipientEmail,
		"recipientPhone":  req.RecipientPhone,
		"submittedAt":     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("failed to start estimate process", map[string]interface{}{
			"requestId": requestID,
			"error":     err,
		})
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, AsyncEstimateResponse{RequestID: requestID, ProcessInstanceKey: key})
}

func writeError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	c.JSON(statusFor(stdErr.Code), stdErr)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeProfileValidationFailed, errors.ErrCodeThemeNotFound:
		return http.StatusBadRequest
	case errors.ErrCodeResourceNotFound:
		return http.StatusNotFound
	case errors.ErrCodePredictionFailed, errors.ErrCodePredictorTimeout, errors.ErrCodeExternalServiceError:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
