package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
	"github.com/vaesta/outfit-advisor/internal/infra/config"
	apperrors "github.com/vaesta/outfit-advisor/pkg/errors"
)

func TestRouter_RecommendSuccess(t *testing.T) {
	resp := outfit.Response{
		City:    "Paris",
		Weather: outfit.WeatherReading{City: "Paris", TemperatureC: 4},
		Outfit:  outfit.Outfit{Type: outfit.OutfitTypeLayered, MatchPercent: 87.5},
	}
	svc := &stubOutfit{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			require.Equal(t, "Paris", req.City)
			return resp, nil
		},
	}

	recorder := performJSON(http.MethodPost, "/api/v1/outfits/recommendations", `{"city":"Paris"}`, newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got outfit.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, resp.City, got.City)
	require.InDelta(t, resp.Outfit.MatchPercent, got.Outfit.MatchPercent, 1e-9)
}

func TestRouter_RecommendEmptyCity(t *testing.T) {
	svc := &stubOutfit{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			return outfit.Response{}, apperrors.Wrap("invalid_input", "city cannot be empty", nil)
		},
	}

	recorder := performJSON(http.MethodPost, "/api/v1/outfits/recommendations", `{"city":""}`, newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "city cannot be empty")
}

func TestRouter_RecommendIncompleteCatalog(t *testing.T) {
	svc := &stubOutfit{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			return outfit.Response{}, apperrors.Wrap("incomplete_catalog", "no suitable top found", nil)
		},
	}

	recorder := performJSON(http.MethodPost, "/api/v1/outfits/recommendations", `{"city":"Lyon"}`, newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "incomplete_catalog", errBody["error"]["code"])
}

func TestRouter_RecommendWeatherUpstreamDown(t *testing.T) {
	svc := &stubOutfit{
		recommendFn: func(ctx context.Context, req outfit.Request) (outfit.Response, error) {
			return outfit.Response{}, apperrors.Wrap("weather_error", "weather lookup failed", nil)
		},
	}

	recorder := performJSON(http.MethodPost, "/api/v1/outfits/recommendations", `{"city":"Nantes"}`, newRouterUnderTest(t, svc, nil, nil))
	require.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestRouter_AddWardrobeItem(t *testing.T) {
	item := wardrobe.Item{ID: "item-1", Category: outfit.CategoryTop, Color: "navy"}
	wsvc := &stubWardrobe{
		addFn: func(ctx context.Context, req wardrobe.AddItemRequest) (wardrobe.Item, error) {
			require.NotEmpty(t, req.ImageData)
			require.Equal(t, "image/png", req.MimeType)
			return item, nil
		},
	}

	body, contentType := multipartImage(t, "photo.png", "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wardrobe/items", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, nil, wsvc, nil).Handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var got wardrobe.Item
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, item.ID, got.ID)
}

func TestRouter_AddWardrobeItemMissingFile(t *testing.T) {
	recorder := performJSON(http.MethodPost, "/api/v1/wardrobe/items", `{}`, newRouterUnderTest(t, nil, &stubWardrobe{}, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_RemoveWardrobeItemNotFound(t *testing.T) {
	wsvc := &stubWardrobe{
		removeFn: func(ctx context.Context, id string) error {
			return apperrors.Wrap("not_found", "wardrobe item "+id+" not found", nil)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wardrobe/items/ghost", nil)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, nil, wsvc, nil).Handler.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRouter_SearchWardrobe(t *testing.T) {
	wsvc := &stubWardrobe{
		searchFn: func(ctx context.Context, query string, limit int) ([]wardrobe.Match, error) {
			require.Equal(t, "warm jacket", query)
			require.Equal(t, 3, limit)
			return []wardrobe.Match{{Item: wardrobe.Item{ID: "coat-1"}, Distance: 0.12}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wardrobe/items/search?q=warm+jacket&limit=3", nil)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, nil, wsvc, nil).Handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got map[string][]wardrobe.Match
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got["matches"], 1)
	require.Equal(t, "coat-1", got["matches"][0].Item.ID)
}

func TestRouter_SaveFeedback(t *testing.T) {
	esvc := &stubEvaluation{
		saveFn: func(ctx context.Context, fb evaluation.Feedback) (evaluation.Feedback, error) {
			require.Equal(t, 5, fb.Satisfaction)
			fb.ID = "fb-1"
			return fb, nil
		},
	}

	recorder := performJSON(http.MethodPost, "/api/v1/feedback", `{"relevance":4,"satisfaction":5,"diversity":3}`, newRouterUnderTest(t, nil, nil, esvc))
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestRouter_FeedbackReport(t *testing.T) {
	esvc := &stubEvaluation{
		reportFn: func(ctx context.Context) (evaluation.Report, error) {
			return evaluation.Report{Responses: 2, AvgSatisfaction: 4.5}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/report", nil)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, nil, nil, esvc).Handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var got evaluation.Report
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, 2, got.Responses)
}

func TestRouter_Healthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, nil, nil, nil).Handler.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func performJSON(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func multipartImage(t *testing.T, filename, mimeType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func newRouterUnderTest(t *testing.T, osvc outfit.Service, wsvc wardrobe.Service, esvc evaluation.Service) *http.Server {
	t.Helper()
	if osvc == nil {
		osvc = &stubOutfit{}
	}
	if wsvc == nil {
		wsvc = &stubWardrobe{}
	}
	if esvc == nil {
		esvc = &stubEvaluation{}
	}
	handler := NewHandler(osvc, wsvc, esvc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubOutfit struct {
	recommendFn func(ctx context.Context, req outfit.Request) (outfit.Response, error)
}

func (s *stubOutfit) Recommend(ctx context.Context, req outfit.Request) (outfit.Response, error) {
	if s.recommendFn != nil {
		return s.recommendFn(ctx, req)
	}
	return outfit.Response{}, nil
}

type stubWardrobe struct {
	addFn    func(ctx context.Context, req wardrobe.AddItemRequest) (wardrobe.Item, error)
	removeFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context) ([]wardrobe.Item, error)
	searchFn func(ctx context.Context, query string, limit int) ([]wardrobe.Match, error)
}

func (s *stubWardrobe) AddItem(ctx context.Context, req wardrobe.AddItemRequest) (wardrobe.Item, error) {
	if s.addFn != nil {
		return s.addFn(ctx, req)
	}
	return wardrobe.Item{}, nil
}

func (s *stubWardrobe) RemoveItem(ctx context.Context, id string) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, id)
	}
	return nil
}

func (s *stubWardrobe) ListItems(ctx context.Context) ([]wardrobe.Item, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubWardrobe) SearchSimilar(ctx context.Context, query string, limit int) ([]wardrobe.Match, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type stubEvaluation struct {
	saveFn   func(ctx context.Context, fb evaluation.Feedback) (evaluation.Feedback, error)
	reportFn func(ctx context.Context) (evaluation.Report, error)
}

func (s *stubEvaluation) SaveFeedback(ctx context.Context, fb evaluation.Feedback) (evaluation.Feedback, error) {
	if s.saveFn != nil {
		return s.saveFn(ctx, fb)
	}
	return fb, nil
}

func (s *stubEvaluation) Report(ctx context.Context) (evaluation.Report, error) {
	if s.reportFn != nil {
		return s.reportFn(ctx)
	}
	return evaluation.Report{}, nil
}
