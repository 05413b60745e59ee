package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	outfitSvc   outfit.Service
	wardrobeSvc wardrobe.Service
	evalSvc     evaluation.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(outfitSvc outfit.Service, wardrobeSvc wardrobe.Service, evalSvc evaluation.Service, logger *slog.Logger) *Handler {
	return &Handler{
		outfitSvc:   outfitSvc,
		wardrobeSvc: wardrobeSvc,
		evalSvc:     evalSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Recommend returns a weather-appropriate outfit for the requested city.
func (h *Handler) Recommend(c *gin.Context) {
	var req outfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.outfitSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "recommendation_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "incomplete_catalog"):
			status = http.StatusUnprocessableEntity
			code = "incomplete_catalog"
		case apperrors.IsCode(err, "weather_error"):
			status = http.StatusBadGateway
			code = "weather_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddWardrobeItem accepts a multipart photo upload and catalogs the garment.
func (h *Handler) AddWardrobeItem(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "image file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "image file cannot be read", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "image file cannot be read", err))
		return
	}

	item, err := h.wardrobeSvc.AddItem(c.Request.Context(), wardrobe.AddItemRequest{
		ImageData: data,
		MimeType:  fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		code := "wardrobe_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "vision_error"):
			status = http.StatusBadGateway
			code = "vision_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListWardrobeItems returns the full wardrobe.
func (h *Handler) ListWardrobeItems(c *gin.Context) {
	items, err := h.wardrobeSvc.ListItems(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "wardrobe_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RemoveWardrobeItem deletes one garment and its stored photo.
func (h *Handler) RemoveWardrobeItem(c *gin.Context) {
	err := h.wardrobeSvc.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "wardrobe_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "not_found"):
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchWardrobe runs a free-text similarity search over the wardrobe.
func (h *Handler) SearchWardrobe(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be an integer", err))
			return
		}
		limit = parsed
	}

	matches, err := h.wardrobeSvc.SearchSimilar(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		status := http.StatusInternalServerError
		code := "search_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "search_error"):
			status = http.StatusBadGateway
			code = "search_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// SaveFeedback records one user rating of a recommendation.
func (h *Handler) SaveFeedback(c *gin.Context) {
	var fb evaluation.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	saved, err := h.evalSvc.SaveFeedback(c.Request.Context(), fb)
	if err != nil {
		status := http.StatusInternalServerError
		code := "feedback_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// FeedbackReport aggregates collected feedback into study metrics.
func (h *Handler) FeedbackReport(c *gin.Context) {
	report, err := h.evalSvc.Report(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "feedback_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, report)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
