package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/franks42/uuidv7-go/internal/generator"
	"github.com/franks42/uuidv7-go/internal/metrics"
	"github.com/franks42/uuidv7-go/internal/uuid7"
	"github.com/franks42/uuidv7-go/pkg/log"
	"github.com/franks42/uuidv7-go/pkg/response"
)

// Handler handles HTTP requests for the ID service.
type Handler struct {
	gen      generator.Generator
	batchMax int
}

// NewHandler creates a new HTTP handler.
func NewHandler(gen generator.Generator, batchMax int) *Handler {
	return &Handler{
		gen:      gen,
		batchMax: batchMax,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		ids := api.Group("/ids")
		{
			ids.POST("", h.GenerateID)
			ids.POST("/batch", h.GenerateBatch)
			ids.POST("/validate", h.ValidateID)
			ids.GET("/:id", h.ParseID)
		}
	}
}

type batchRequest struct {
	Count int `json:"count"`
}

type validateRequest struct {
	ID string `json:"id"`
}

type parseResponse struct {
	ID          string             `json:"id"`
	TimestampMs uint64             `json:"timestamp_ms"`
	Datetime    string             `json:"datetime"`
	CounterA    uint16             `json:"counter_a"`
	CounterBHi  uint32             `json:"counter_b_hi"`
	CounterBLo  uint32             `json:"counter_b_lo"`
	CounterHex  string             `json:"counter_hex"`
	Key         uuid7.CompositeKey `json:"composite_key"`
}

// GenerateID mints a single identifier.
func (h *Handler) GenerateID(c *gin.Context) {
	l := log.Ctx(c.Request.Context())

	id, err := h.gen.Generate()
	if err != nil {
		metrics.GenerateFailures.Inc()
		l.Error().Err(err).Msg("failed to generate id")
		response.InternalError(c, "failed to generate id")
		return
	}

	metrics.UUIDsGenerated.Inc()
	response.Success(c, gin.H{"id": id})
}

// GenerateBatch mints between 1 and the configured maximum of identifiers.
func (h *Handler) GenerateBatch(c *gin.Context) {
	l := log.Ctx(c.Request.Context())

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.Count < 1 || req.Count > h.batchMax {
		response.BadRequest(c, fmt.Sprintf("count must be between 1 and %d, got %d", h.batchMax, req.Count))
		return
	}

	ids, err := h.gen.GenerateBatch(req.Count)
	if err != nil {
		metrics.GenerateFailures.Inc()
		l.Error().Err(err).Int(log.FieldCount, req.Count).Msg("failed to generate batch")
		response.InternalError(c, "failed to generate ids")
		return
	}

	metrics.UUIDsGenerated.Add(float64(len(ids)))
	l.Debug().Int(log.FieldCount, len(ids)).Msg("batch generated")
	response.Success(c, gin.H{"ids": ids})
}

// ValidateID reports whether the given text is a canonical UUIDv7.
func (h *Handler) ValidateID(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	valid, reason := h.gen.Validate(req.ID)
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	metrics.ParseRequests.WithLabelValues(outcome).Inc()

	response.Success(c, gin.H{"valid": valid, "reason": reason})
}

// ParseID extracts the embedded timestamp and counter fields.
func (h *Handler) ParseID(c *gin.Context) {
	id := c.Param("id")

	result, err := h.gen.Parse(id)
	if err != nil {
		metrics.ParseRequests.WithLabelValues("invalid").Inc()
		if errors.Is(err, uuid7.ErrFormat) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	metrics.ParseRequests.WithLabelValues("valid").Inc()
	response.Success(c, parseResponse{
		ID:          id,
		TimestampMs: result.TimestampMs,
		Datetime:    result.Datetime.Format("2006-01-02T15:04:05.000Z07:00"),
		CounterA:    result.CounterA,
		CounterBHi:  result.CounterBHi,
		CounterBLo:  result.CounterBLo,
		CounterHex:  result.CounterHex,
		Key: uuid7.CompositeKey{
			TimestampMs: result.TimestampMs,
			CounterA:    result.CounterA,
			CounterBHi:  result.CounterBHi,
			CounterBLo:  result.CounterBLo,
		},
	})
}
