package grpc

// The refinance.v1.RefinanceService descriptor is written by hand. Messages
// are the application DTOs carried by the JSON codec, so clients must call
// with the "json" content subtype.

import (
	"context"

	grpclib "google.golang.org/grpc"

	"github.com/bibbank/refinance-service/internal/application/dto"
)

const serviceName = "refinance.v1.RefinanceService"

// Full method names, used for routing and role checks.
const (
	MethodEvaluate              = "/" + serviceName + "/Evaluate"
	MethodQuickQuote            = "/" + serviceName + "/QuickQuote"
	MethodCaptureLead           = "/" + serviceName + "/CaptureLead"
	MethodSubmitApplication     = "/" + serviceName + "/SubmitApplication"
	MethodGetApplication        = "/" + serviceName + "/GetApplication"
	MethodProceedToSubmission   = "/" + serviceName + "/ProceedToSubmission"
	MethodCompareSavings        = "/" + serviceName + "/CompareSavings"
	MethodListApplications      = "/" + serviceName + "/ListApplications"
	MethodReevaluateApplication = "/" + serviceName + "/ReevaluateApplication"
	MethodUpdateStatus          = "/" + serviceName + "/UpdateStatus"
	MethodSetLinkSent           = "/" + serviceName + "/SetLinkSent"
	MethodTrashApplication      = "/" + serviceName + "/TrashApplication"
)

// RefinanceServiceServer is the server API for refinance.v1.RefinanceService.
type RefinanceServiceServer interface {
	Evaluate(context.Context, *dto.EvaluateRequest) (*dto.EligibilityResponse, error)
	QuickQuote(context.Context, *dto.QuickQuoteRequest) (*dto.QuickQuoteResponse, error)
	CaptureLead(context.Context, *dto.CaptureLeadRequest) (*dto.ApplicationResponse, error)
	SubmitApplication(context.Context, *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
	GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
	ProceedToSubmission(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
	CompareSavings(context.Context, *dto.CompareSavingsRequest) (*dto.SavingsComparisonResponse, error)
	ListApplications(context.Context, *dto.ListApplicationsRequest) (*dto.ListApplicationsResponse, error)
	ReevaluateApplication(context.Context, *dto.ReevaluateApplicationRequest) (*dto.ReevaluationResponse, error)
	UpdateStatus(context.Context, *dto.UpdateStatusRequest) (*dto.ApplicationResponse, error)
	SetLinkSent(context.Context, *dto.SetLinkSentRequest) (*dto.ApplicationResponse, error)
	TrashApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
}

// RegisterRefinanceServiceServer registers srv with s.
func RegisterRefinanceServiceServer(s grpclib.ServiceRegistrar, srv RefinanceServiceServer) {
	s.RegisterService(&refinanceServiceDesc, srv)
}

var refinanceServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RefinanceServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Evaluate", Handler: unary(MethodEvaluate, RefinanceServiceServer.Evaluate)},
		{MethodName: "QuickQuote", Handler: unary(MethodQuickQuote, RefinanceServiceServer.QuickQuote)},
		{MethodName: "CaptureLead", Handler: unary(MethodCaptureLead, RefinanceServiceServer.CaptureLead)},
		{MethodName: "SubmitApplication", Handler: unary(MethodSubmitApplication, RefinanceServiceServer.SubmitApplication)},
		{MethodName: "GetApplication", Handler: unary(MethodGetApplication, RefinanceServiceServer.GetApplication)},
		{MethodName: "ProceedToSubmission", Handler: unary(MethodProceedToSubmission, RefinanceServiceServer.ProceedToSubmission)},
		{MethodName: "CompareSavings", Handler: unary(MethodCompareSavings, RefinanceServiceServer.CompareSavings)},
		{MethodName: "ListApplications", Handler: unary(MethodListApplications, RefinanceServiceServer.ListApplications)},
		{MethodName: "ReevaluateApplication", Handler: unary(MethodReevaluateApplication, RefinanceServiceServer.ReevaluateApplication)},
		{MethodName: "UpdateStatus", Handler: unary(MethodUpdateStatus, RefinanceServiceServer.UpdateStatus)},
		{MethodName: "SetLinkSent", Handler: unary(MethodSetLinkSent, RefinanceServiceServer.SetLinkSent)},
		{MethodName: "TrashApplication", Handler: unary(MethodTrashApplication, RefinanceServiceServer.TrashApplication)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "refinance/v1/refinance.proto",
}

// unary adapts a typed server method to grpc.MethodDesc's handler shape.
func unary[Req, Resp any](
	fullMethod string,
	call func(RefinanceServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RefinanceServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RefinanceServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RefinanceServiceClient calls refinance.v1.RefinanceService with the JSON
// codec.
type RefinanceServiceClient struct {
	cc grpclib.ClientConnInterface
}

func NewRefinanceServiceClient(cc grpclib.ClientConnInterface) *RefinanceServiceClient {
	return &RefinanceServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpclib.ClientConnInterface, method string, in *Req, opts []grpclib.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(jsonCodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RefinanceServiceClient) Evaluate(ctx context.Context, in *dto.EvaluateRequest, opts ...grpclib.CallOption) (*dto.EligibilityResponse, error) {
	return invoke[dto.EvaluateRequest, dto.EligibilityResponse](ctx, c.cc, MethodEvaluate, in, opts)
}

func (c *RefinanceServiceClient) QuickQuote(ctx context.Context, in *dto.QuickQuoteRequest, opts ...grpclib.CallOption) (*dto.QuickQuoteResponse, error) {
	return invoke[dto.QuickQuoteRequest, dto.QuickQuoteResponse](ctx, c.cc, MethodQuickQuote, in, opts)
}

func (c *RefinanceServiceClient) CaptureLead(ctx context.Context, in *dto.CaptureLeadRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.CaptureLeadRequest, dto.ApplicationResponse](ctx, c.cc, MethodCaptureLead, in, opts)
}

func (c *RefinanceServiceClient) SubmitApplication(ctx context.Context, in *dto.SubmitApplicationRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.SubmitApplicationRequest, dto.ApplicationResponse](ctx, c.cc, MethodSubmitApplication, in, opts)
}

func (c *RefinanceServiceClient) GetApplication(ctx context.Context, in *dto.GetApplicationRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.GetApplicationRequest, dto.ApplicationResponse](ctx, c.cc, MethodGetApplication, in, opts)
}

func (c *RefinanceServiceClient) ProceedToSubmission(ctx context.Context, in *dto.GetApplicationRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.GetApplicationRequest, dto.ApplicationResponse](ctx, c.cc, MethodProceedToSubmission, in, opts)
}

func (c *RefinanceServiceClient) CompareSavings(ctx context.Context, in *dto.CompareSavingsRequest, opts ...grpclib.CallOption) (*dto.SavingsComparisonResponse, error) {
	return invoke[dto.CompareSavingsRequest, dto.SavingsComparisonResponse](ctx, c.cc, MethodCompareSavings, in, opts)
}

func (c *RefinanceServiceClient) ListApplications(ctx context.Context, in *dto.ListApplicationsRequest, opts ...grpclib.CallOption) (*dto.ListApplicationsResponse, error) {
	return invoke[dto.ListApplicationsRequest, dto.ListApplicationsResponse](ctx, c.cc, MethodListApplications, in, opts)
}

func (c *RefinanceServiceClient) ReevaluateApplication(ctx context.Context, in *dto.ReevaluateApplicationRequest, opts ...grpclib.CallOption) (*dto.ReevaluationResponse, error) {
	return invoke[dto.ReevaluateApplicationRequest, dto.ReevaluationResponse](ctx, c.cc, MethodReevaluateApplication, in, opts)
}

func (c *RefinanceServiceClient) UpdateStatus(ctx context.Context, in *dto.UpdateStatusRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.UpdateStatusRequest, dto.ApplicationResponse](ctx, c.cc, MethodUpdateStatus, in, opts)
}

func (c *RefinanceServiceClient) SetLinkSent(ctx context.Context, in *dto.SetLinkSentRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.SetLinkSentRequest, dto.ApplicationResponse](ctx, c.cc, MethodSetLinkSent, in, opts)
}

func (c *RefinanceServiceClient) TrashApplication(ctx context.Context, in *dto.GetApplicationRequest, opts ...grpclib.CallOption) (*dto.ApplicationResponse, error) {
	return invoke[dto.GetApplicationRequest, dto.ApplicationResponse](ctx, c.cc, MethodTrashApplication, in, opts)
}
