package trip

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// ResolveTrip godoc
// @Summary      Resolve a free-text trip request into an itinerary
// @Description  Extracts trip parameters from the prompt, then searches, filters and schedules places.
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body types.ResolveTripRequest true "Free-text trip request"
// @Success      200 {object} types.TripResponse
// @Failure      400 {object} api.ErrorBody "Invalid or unactionable request"
// @Failure      502 {object} api.ErrorBody "Place directory or language model unavailable"
// @Failure      500 {object} api.ErrorBody
// @Router       /trips/resolve [post]
func (h *HandlerImpl) ResolveTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "ResolveTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/trips/resolve"),
	))
	defer span.End()
	r = r.WithContext(ctx)

	l := h.logger.With(slog.String("handler", "ResolveTrip"))
	l.DebugContext(ctx, "Resolve trip handler invoked")

	var req types.ResolveTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid body")
		api.WriteError(w, r, l, err)
		return
	}

	resp, err := h.service.ResolveTrip(ctx, req.Prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		api.WriteError(w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// ApplyFilters godoc
// @Summary      Build an itinerary from structured trip parameters
// @Description  Skips language understanding and runs search, enrichment, filtering and scheduling directly.
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body types.TripParameters true "Trip parameters"
// @Success      200 {object} types.TripResponse
// @Failure      400 {object} api.ErrorBody
// @Failure      502 {object} api.ErrorBody
// @Failure      500 {object} api.ErrorBody
// @Router       /trips/filter [post]
func (h *HandlerImpl) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "ApplyFilters", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/trips/filter"),
	))
	defer span.End()
	r = r.WithContext(ctx)

	l := h.logger.With(slog.String("handler", "ApplyFilters"))

	var params types.TripParameters
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid body")
		api.WriteError(w, r, l, err)
		return
	}

	resp, err := h.service.ApplyFilters(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "apply filters failed")
		api.WriteError(w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
