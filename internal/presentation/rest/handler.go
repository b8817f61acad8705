// Package rest exposes the refinance use cases over HTTP/JSON.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/application/usecase"
)

const maxBodyBytes = 1 << 20

// UseCases groups the operations served over HTTP.
type UseCases struct {
	Evaluate     *usecase.EvaluateEligibilityUseCase
	QuickQuote   *usecase.QuickQuoteUseCase
	CaptureLead  *usecase.CaptureLeadUseCase
	Submit       *usecase.SubmitApplicationUseCase
	Proceed      *usecase.ProceedToSubmissionUseCase
	Get          *usecase.GetApplicationUseCase
	List         *usecase.ListApplicationsUseCase
	Reevaluate   *usecase.ReevaluateApplicationUseCase
	UpdateStatus *usecase.UpdateApplicationStatusUseCase
	SetLinkSent  *usecase.SetLinkSentUseCase
	Trash        *usecase.TrashApplicationUseCase
	Savings      *usecase.CompareSavingsUseCase
}

// Handler translates HTTP requests into use case calls.
type Handler struct {
	uc     UseCases
	logger *slog.Logger
}

func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, logger: logger}
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.Evaluate.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) quickQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuickQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.QuickQuote.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) captureLead(w http.ResponseWriter, r *http.Request) {
	var req dto.CaptureLeadRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.CaptureLead.Execute(r.Context(), req)
	h.respond(w, r, http.StatusCreated, resp, err)
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitApplicationRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.Submit.Execute(r.Context(), req)
	h.respond(w, r, http.StatusCreated, resp, err)
}

func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Get.Execute(r.Context(), dto.GetApplicationRequest{ApplicationID: r.PathValue("id")})
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) proceedToSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Proceed.Execute(r.Context(), dto.GetApplicationRequest{ApplicationID: r.PathValue("id")})
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) compareSavings(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareSavingsRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := h.uc.Savings.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

// Admin routes.

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	req := dto.ListApplicationsRequest{Stage: r.URL.Query().Get("stage")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidRequest))
			return
		}
		req.Limit = limit
	}
	resp, err := h.uc.List.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) reevaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.ReevaluateApplicationRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")
	resp, err := h.uc.Reevaluate.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")
	resp, err := h.uc.UpdateStatus.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) setLinkSent(w http.ResponseWriter, r *http.Request) {
	var req dto.SetLinkSentRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.ApplicationID = r.PathValue("id")
	resp, err := h.uc.SetLinkSent.Execute(r.Context(), req)
	h.respond(w, r, http.StatusOK, resp, err)
}

func (h *Handler) trash(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Trash.Execute(r.Context(), dto.GetApplicationRequest{ApplicationID: r.PathValue("id")})
	h.respond(w, r, http.StatusOK, resp, err)
}

// decode reads a JSON body into v. On failure it writes a 400 and returns
// false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		case errors.Is(err, io.EOF):
			h.writeError(w, r, fmt.Errorf("%w: request body is empty", usecase.ErrInvalidRequest))
		default:
			h.writeError(w, r, fmt.Errorf("%w: malformed JSON: %v", usecase.ErrInvalidRequest, err))
		}
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}
