package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/application/usecase"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// UseCases groups the operations served over gRPC.
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

// RefinanceHandler implements RefinanceServiceServer on top of the use cases.
type RefinanceHandler struct {
	uc     UseCases
	logger *slog.Logger
}

func NewRefinanceHandler(uc UseCases, logger *slog.Logger) *RefinanceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefinanceHandler{uc: uc, logger: logger}
}

var _ RefinanceServiceServer = (*RefinanceHandler)(nil)

func (h *RefinanceHandler) Evaluate(ctx context.Context, req *dto.EvaluateRequest) (*dto.EligibilityResponse, error) {
	return reply(ctx, h, "Evaluate", req, h.uc.Evaluate.Execute)
}

func (h *RefinanceHandler) QuickQuote(ctx context.Context, req *dto.QuickQuoteRequest) (*dto.QuickQuoteResponse, error) {
	return reply(ctx, h, "QuickQuote", req, h.uc.QuickQuote.Execute)
}

func (h *RefinanceHandler) CaptureLead(ctx context.Context, req *dto.CaptureLeadRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "CaptureLead", req, h.uc.CaptureLead.Execute)
}

func (h *RefinanceHandler) SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "SubmitApplication", req, h.uc.Submit.Execute)
}

func (h *RefinanceHandler) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "GetApplication", req, h.uc.Get.Execute)
}

func (h *RefinanceHandler) ProceedToSubmission(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "ProceedToSubmission", req, h.uc.Proceed.Execute)
}

func (h *RefinanceHandler) CompareSavings(ctx context.Context, req *dto.CompareSavingsRequest) (*dto.SavingsComparisonResponse, error) {
	return reply(ctx, h, "CompareSavings", req, h.uc.Savings.Execute)
}

func (h *RefinanceHandler) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) (*dto.ListApplicationsResponse, error) {
	return reply(ctx, h, "ListApplications", req, h.uc.List.Execute)
}

func (h *RefinanceHandler) ReevaluateApplication(ctx context.Context, req *dto.ReevaluateApplicationRequest) (*dto.ReevaluationResponse, error) {
	return reply(ctx, h, "ReevaluateApplication", req, h.uc.Reevaluate.Execute)
}

func (h *RefinanceHandler) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "UpdateStatus", req, h.uc.UpdateStatus.Execute)
}

func (h *RefinanceHandler) SetLinkSent(ctx context.Context, req *dto.SetLinkSentRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "SetLinkSent", req, h.uc.SetLinkSent.Execute)
}

func (h *RefinanceHandler) TrashApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return reply(ctx, h, "TrashApplication", req, h.uc.Trash.Execute)
}

func reply[Req, Resp any](
	ctx context.Context,
	h *RefinanceHandler,
	method string,
	req *Req,
	exec func(context.Context, Req) (Resp, error),
) (*Resp, error) {
	resp, err := exec(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, method, err)
	}
	return &resp, nil
}

// toStatus maps use case errors onto gRPC status codes.
func (h *RefinanceHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrApplicationNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStageTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, port.ErrConcurrentModification):
		return status.Error(codes.Aborted, err.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
