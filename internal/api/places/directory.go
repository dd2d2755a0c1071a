package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	DefaultBaseURL    = "https://maps.googleapis.com/maps/api/place"
	defaultMaxRetries = 3
	detailFields      = "place_id,name,geometry,business_status,rating,user_ratings_total,price_level," +
		"opening_hours,serves_breakfast,serves_brunch,serves_lunch,serves_dinner,editorial_summary,formatted_address,icon,types"
)

// Directory is the external places search/detail service.
type Directory interface {
	Search(ctx context.Context, query string, category types.Category) ([]RawPlace, error)
	Detail(ctx context.Context, placeID string) (*RawPlace, error)
}

var _ Directory = (*GoogleDirectory)(nil)

type GoogleDirectory struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.AppMetrics
}

type DirectoryConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

func NewGoogleDirectory(cfg DirectoryConfig, m *metrics.AppMetrics, logger *slog.Logger) *GoogleDirectory {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &GoogleDirectory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    m,
	}
}

// placeType is the directory's type filter for each category.
func placeType(c types.Category) string {
	switch c {
	case types.CategoryRestaurant:
		return "restaurant"
	case types.CategoryTourist:
		return "tourist_attraction"
	case types.CategoryTransit:
		return "transit_station"
	}
	return ""
}

// SearchQuery builds the canonical text query for a category. Alternatives are
// joined with "|" and terms with "+".
func SearchQuery(c types.Category, p types.TripParameters) string {
	locs := make([]string, 0, len(p.Locations))
	for _, l := range p.Locations {
		if l = strings.TrimSpace(l); l != "" {
			locs = append(locs, l)
		}
	}
	location := strings.Join(locs, "|")

	var tag string
	switch c {
	case types.CategoryRestaurant:
		tag = alternatives(p.Cuisine)
	case types.CategoryTourist:
		tag = alternatives(p.Attraction)
	}
	if tag == "" {
		return location
	}
	return tag + "+" + location
}

func alternatives(s string) string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "|")
}

func (g *GoogleDirectory) Search(ctx context.Context, query string, category types.Category) ([]RawPlace, error) {
	ctx, span := otel.Tracer("PlacesDirectory").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("places.query", query),
		attribute.String("places.category", string(category)),
	))
	defer span.End()

	params := url.Values{}
	// "+" in the canonical query is a term separator, sent as an encoded space.
	params.Set("query", strings.ReplaceAll(query, "+", " "))
	if t := placeType(category); t != "" {
		params.Set("type", t)
	}
	params.Set("key", g.apiKey)

	var out searchResponse
	if err := g.getJSON(ctx, "places.search", g.baseURL+"/textsearch/json?"+params.Encode(), &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}
	if err := checkStatus("places.search", out.Status, out.ErrorMessage); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search rejected")
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.results", len(out.Results)))
	span.SetStatus(codes.Ok, "")
	return out.Results, nil
}

func (g *GoogleDirectory) Detail(ctx context.Context, placeID string) (*RawPlace, error) {
	ctx, span := otel.Tracer("PlacesDirectory").Start(ctx, "Detail", trace.WithAttributes(
		attribute.String("places.id", placeID),
	))
	defer span.End()

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)
	params.Set("key", g.apiKey)

	var out detailResponse
	if err := g.getJSON(ctx, "places.detail", g.baseURL+"/details/json?"+params.Encode(), &out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail failed")
		return nil, err
	}
	if err := checkStatus("places.detail", out.Status, out.ErrorMessage); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "detail rejected")
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return &out.Result, nil
}

func checkStatus(op, status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	}
	if message == "" {
		message = "no error message"
	}
	return &types.UpstreamError{Op: op, Err: fmt.Errorf("status %s: %s", status, message)}
}

func (g *GoogleDirectory) getJSON(ctx context.Context, op, rawURL string, dst any) error {
	start := time.Now()
	defer func() { g.metrics.RecordUpstreamCall(ctx, op, time.Since(start)) }()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return &types.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &types.UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

func (g *GoogleDirectory) do(req *http.Request) (*http.Response, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// doWithRetry retries network errors, 429 and 5xx with exponential backoff.
func (g *GoogleDirectory) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := 200 * time.Millisecond
	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := g.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
				http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				retry = true
			}
		}
		var netErr net.Error
		if !retry && errors.As(err, &netErr) && ctx.Err() == nil {
			retry = true
		}
		if !retry || attempt == g.maxRetries {
			return nil, lastErr
		}

		g.logger.WarnContext(ctx, "Places request failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}
