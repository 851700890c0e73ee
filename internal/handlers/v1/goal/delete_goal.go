package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type goalDeleter interface {
	DeleteGoal(ctx context.Context, id uuid.UUID) (*service.Goal, error)
}

// DeleteGoalHandler handles DELETE /v1/goals/{id}.
type DeleteGoalHandler struct {
	GoalService goalDeleter
}

func NewDeleteGoalHandler(svc goalDeleter) *DeleteGoalHandler {
	return &DeleteGoalHandler{GoalService: svc}
}

func (h *DeleteGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-goal",
		Method:        http.MethodDelete,
		Path:          basePath + "/{id}",
		Summary:       "Delete a savings goal",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Goals"},
	}, h.handle)
}

func (h *DeleteGoalHandler) handle(ctx context.Context, input *GoalIDInput) (*struct{}, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	if _, err = h.GoalService.DeleteGoal(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete goal")
	}
	return &struct{}{}, nil
}
