package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bibbank/refinance-service/internal/application/dto"
	"github.com/bibbank/refinance-service/internal/domain/port"
	"github.com/bibbank/refinance-service/internal/domain/valueobject"
)

// DefaultListLimit caps ListApplications when the caller gives no limit.
const DefaultListLimit = 50

const maxListLimit = 500

// GetApplicationUseCase retrieves a single application.
type GetApplicationUseCase struct {
	repo port.ApplicationRepository
}

func NewGetApplicationUseCase(repo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{repo: repo}
}

func (uc *GetApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error) {
	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListApplicationsUseCase lists one pipeline stage for the back office.
type ListApplicationsUseCase struct {
	repo port.ApplicationRepository
}

func NewListApplicationsUseCase(repo port.ApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{repo: repo}
}

func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) (dto.ListApplicationsResponse, error) {
	stage, err := valueobject.NewPipelineStage(strings.ToUpper(req.Stage))
	if err != nil {
		return dto.ListApplicationsResponse{}, invalid(err)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, maxListLimit)

	apps, err := uc.repo.ListByStage(ctx, stage, limit)
	if err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("list applications: %w", err)
	}

	resp := dto.ListApplicationsResponse{
		Stage:        stage.String(),
		Applications: make([]dto.ApplicationResponse, len(apps)),
	}
	for i, app := range apps {
		resp.Applications[i] = toApplicationResponse(app)
	}
	return resp, nil
}
