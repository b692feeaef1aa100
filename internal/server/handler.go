package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/avclassify/internal/classify"
	"github.com/vyrodovalexey/avclassify/internal/config"
	"github.com/vyrodovalexey/avclassify/internal/observability"
)

// operationCode is returned by GET /classify.
const operationCode = 1

// classifyRequest is the request body for POST /classify. Data is a
// pointer so a missing key can be told apart from an empty array.
type classifyRequest struct {
	Data *[]any `json:"data"`
}

// classifyResponse is the response body for a successful classification.
type classifyResponse struct {
	IsSuccess  bool   `json:"is_success"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
	classify.Result
}

// errorResponse is the response body for a rejected request.
type errorResponse struct {
	IsSuccess bool   `json:"is_success"`
	Error     string `json:"error"`
}

// ClassifyHandler handles the classification endpoints.
type ClassifyHandler struct {
	identity config.IdentityConfig
	maxItems int
	logger   observability.Logger
	metrics  *observability.Metrics
}

// HandlerOption configures a ClassifyHandler.
type HandlerOption func(*ClassifyHandler)

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(logger observability.Logger) HandlerOption {
	return func(h *ClassifyHandler) {
		h.logger = logger
	}
}

// WithHandlerMetrics sets the handler metrics.
func WithHandlerMetrics(metrics *observability.Metrics) HandlerOption {
	return func(h *ClassifyHandler) {
		h.metrics = metrics
	}
}

// WithMaxItems caps the number of items accepted per request.
func WithMaxItems(n int) HandlerOption {
	return func(h *ClassifyHandler) {
		h.maxItems = n
	}
}

// NewClassifyHandler creates a handler that merges the given identity
// fields into every successful response.
func NewClassifyHandler(identity config.IdentityConfig, opts ...HandlerOption) *ClassifyHandler {
	h := &ClassifyHandler{
		identity: identity,
		maxItems: config.DefaultMaxItems,
		logger:   observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Classify handles POST /classify.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	start := time.Now()

	items, err := h.decodeItems(c)
	if err != nil {
		h.logger.Warn("rejected classification request",
			observability.String("clientIP", c.ClientIP()),
			observability.Error(err),
		)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result := classify.Classify(items)

	if h.metrics != nil {
		h.metrics.RecordClassification(
			len(result.OddNumbers),
			len(result.EvenNumbers),
			len(result.Alphabets),
			len(result.SpecialCharacters),
		)
	}

	h.logger.Info("classified request",
		observability.Int("items", len(items)),
		observability.Duration("latency", time.Since(start)),
	)

	c.JSON(http.StatusOK, classifyResponse{
		IsSuccess:  true,
		UserID:     h.identity.UserID,
		Email:      h.identity.Email,
		RollNumber: h.identity.RollNumber,
		Result:     result,
	})
}

// OperationCode handles GET /classify.
func (h *ClassifyHandler) OperationCode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"operation_code": operationCode})
}

// decodeItems parses and validates the request body, returning the items
// to classify as strings.
func (h *ClassifyHandler) decodeItems(c *gin.Context) ([]string, error) {
	var req classifyRequest

	dec := json.NewDecoder(c.Request.Body)
	// Numbers stay textual so large values survive the round trip intact.
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("request body exceeds %d bytes", maxBytesErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if req.Data == nil {
		return nil, errors.New("missing required field: data")
	}

	data := *req.Data
	if len(data) == 0 {
		return nil, errors.New("data must contain at least one item")
	}
	if len(data) > h.maxItems {
		return nil, fmt.Errorf("data exceeds maximum of %d items", h.maxItems)
	}

	items := make([]string, 0, len(data))
	for i, v := range data {
		item, err := coerceItem(v)
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// coerceItem converts a decoded JSON value into its string form.
// Strings pass through, numbers keep their literal text, booleans
// become "true"/"false". Nulls and nested structures are rejected.
func coerceItem(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case nil:
		return "", errors.New("null values are not allowed")
	default:
		return "", errors.New("items must be strings, numbers, or booleans")
	}
}
