package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/httpapi/internal"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/infra/httpserver"

	"go.opentelemetry.io/otel/attribute"
)

const (
	malformedRequestMessage = "malformed request body"
	generateErrMessage      = "failed to generate firmware"
	buildNotFoundMessage    = "build not found"
	getBuildErrMessage      = "failed to get build"
)

func NewGenerationController(service usecases.GenerationService) *GenerationController {
	return &GenerationController{
		service: service,
	}
}

var _ httpserver.Controller = &GenerationController{}

type GenerationController struct {
	service usecases.GenerationService
}

func (c *GenerationController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /sensors", c.listSensors())
	router.Handle("GET /boards", c.listBoards())
	router.Handle("POST /generate-code", c.generateCode())
	router.Handle("GET /builds/{id}", c.getBuild())
}

func (c *GenerationController) listSensors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sensors := c.service.ListSensors(r.Context())
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromSensors(sensors))
	}
}

func (c *GenerationController) listBoards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boards := c.service.ListBoards(r.Context())
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromBoards(boards))
	}
}

func (c *GenerationController) generateCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.GenerateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			slog.Debug("decoding generate request", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusBadRequest, malformedRequestMessage)
			return
		}

		request := body.ToDomain()
		span := httpserver.GetSpanFromContext(r)
		span.SetAttributes(
			attribute.String("firmware.board", request.BoardID),
			attribute.Int("firmware.sensors", len(request.Sensors)),
		)

		record, err := c.service.Generate(r.Context(), request)
		var rejection *usecases.RejectionError
		switch {
		case errors.As(err, &rejection):
			httpserver.ReplyJSONResponse(w, http.StatusBadRequest, internal.FromDiagnostics(rejection.Diagnostics))
		case err != nil:
			httpserver.ReplyWithError(w, http.StatusInternalServerError, generateErrMessage)
		default:
			span.SetAttributes(attribute.String("firmware.build_id", record.ID.String()))
			httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromBuildRecord(record))
		}
	}
}

func (c *GenerationController) getBuild() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := domain.ID(httpserver.GetPathParam(r, "id"))

		record, err := c.service.GetBuild(r.Context(), id)
		switch {
		case errors.Is(err, usecases.ErrBuildNotFound):
			httpserver.ReplyWithError(w, http.StatusNotFound, buildNotFoundMessage)
		case err != nil:
			httpserver.ReplyWithError(w, http.StatusInternalServerError, getBuildErrMessage)
		default:
			httpserver.ReplyJSONResponse(w, http.StatusOK, internal.FromBuild(record))
		}
	}
}
