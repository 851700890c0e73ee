package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type UpdateGoalProgressBody struct {
	Delta string `json:"delta" doc:"Non-negative decimal to add to the saved amount"`
}

type UpdateGoalProgressInput struct {
	ID   string `path:"id" format:"uuid" doc:"Goal UUID"`
	Body UpdateGoalProgressBody
}

type progressUpdater interface {
	UpdateProgress(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*service.Goal, error)
}

// UpdateGoalProgressHandler handles PATCH /v1/goals/{id}/progress.
type UpdateGoalProgressHandler struct {
	GoalService progressUpdater
}

func NewUpdateGoalProgressHandler(svc progressUpdater) *UpdateGoalProgressHandler {
	return &UpdateGoalProgressHandler{GoalService: svc}
}

func (h *UpdateGoalProgressHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-goal-progress",
		Method:      http.MethodPatch,
		Path:        basePath + "/{id}/progress",
		Summary:     "Add to a goal's saved amount",
		Description: "Adds a non-negative delta to the saved amount atomically.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *UpdateGoalProgressHandler) handle(ctx context.Context, input *UpdateGoalProgressInput) (*GoalOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	delta, err := apierr.ParseDecimal("delta", input.Body.Delta)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("updateProgressMs")
	goal, err := h.GoalService.UpdateProgress(ctx, id, delta)
	stopTimer()
	if err != nil {
		return nil, apierr.FromService(err, "failed to update goal progress")
	}
	logData.AddData("savedAmount", goal.SavedAmount.String())
	return &GoalOutput{Body: fromService(goal)}, nil
}
