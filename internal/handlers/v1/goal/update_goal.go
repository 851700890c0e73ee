package goal

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

// UpdateGoalBody lists the amendable fields. An empty deadline clears it.
type UpdateGoalBody struct {
	Name         *string `json:"name,omitempty" doc:"Goal name"`
	TargetAmount *string `json:"targetAmount,omitempty" doc:"Positive decimal target"`
	SavedAmount  *string `json:"savedAmount,omitempty" doc:"Non-negative decimal saved amount"`
	Deadline     *string `json:"deadline,omitempty" doc:"RFC3339 deadline, empty string to clear"`
}

type UpdateGoalInput struct {
	ID   string `path:"id" format:"uuid" doc:"Goal UUID"`
	Body UpdateGoalBody
}

type goalUpdater interface {
	UpdateGoal(ctx context.Context, id uuid.UUID, update service.GoalUpdate) (*service.Goal, error)
}

// UpdateGoalHandler handles PUT /v1/goals/{id}.
type UpdateGoalHandler struct {
	GoalService goalUpdater
}

func NewUpdateGoalHandler(svc goalUpdater) *UpdateGoalHandler {
	return &UpdateGoalHandler{GoalService: svc}
}

func (h *UpdateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-goal",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update a savings goal",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseUpdateGoalBody(body *UpdateGoalBody) (service.GoalUpdate, error) {
	var update service.GoalUpdate
	if body.Name != nil {
		update.Name = omit.From(*body.Name)
	}
	if body.TargetAmount != nil {
		target, err := apierr.ParseDecimal("targetAmount", *body.TargetAmount)
		if err != nil {
			return update, err
		}
		update.TargetAmount = omit.From(target)
	}
	if body.SavedAmount != nil {
		saved, err := apierr.ParseDecimal("savedAmount", *body.SavedAmount)
		if err != nil {
			return update, err
		}
		update.SavedAmount = omit.From(saved)
	}
	if body.Deadline != nil {
		deadline, err := apierr.ParseOptionalTime("deadline", *body.Deadline)
		if err != nil {
			return update, err
		}
		update.Deadline = omitnull.FromPtr(deadline)
	}
	return update, nil
}

func (h *UpdateGoalHandler) handle(ctx context.Context, input *UpdateGoalInput) (*GoalOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	update, err := parseUpdateGoalBody(&input.Body)
	if err != nil {
		return nil, err
	}
	goal, err := h.GoalService.UpdateGoal(ctx, id, update)
	if err != nil {
		return nil, apierr.FromService(err, "failed to update goal")
	}
	return &GoalOutput{Body: fromService(goal)}, nil
}
