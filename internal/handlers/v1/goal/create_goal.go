package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/logging"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type CreateGoalBody struct {
	UserID       string `json:"userId" format:"uuid" doc:"Owning user UUID"`
	Name         string `json:"name" doc:"Goal name"`
	TargetAmount string `json:"targetAmount" doc:"Positive decimal target"`
	Deadline     string `json:"deadline,omitempty" doc:"Optional RFC3339 deadline"`
}

type CreateGoalInput struct {
	Body CreateGoalBody
}

type CreateGoalOutput struct {
	Status int
	Body   Goal
}

type goalCreator interface {
	CreateGoal(ctx context.Context, create service.GoalCreate) (*service.Goal, error)
}

// CreateGoalHandler handles POST /v1/goals.
type CreateGoalHandler struct {
	GoalService goalCreator
}

func NewCreateGoalHandler(svc goalCreator) *CreateGoalHandler {
	return &CreateGoalHandler{GoalService: svc}
}

func (h *CreateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        basePath,
		Summary:     "Create a savings goal",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *CreateGoalHandler) handle(ctx context.Context, input *CreateGoalInput) (*CreateGoalOutput, error) {
	userID, err := apierr.ParseUUID("userId", input.Body.UserID)
	if err != nil {
		return nil, err
	}
	target, err := apierr.ParseDecimal("targetAmount", input.Body.TargetAmount)
	if err != nil {
		return nil, err
	}
	deadline, err := apierr.ParseOptionalTime("deadline", input.Body.Deadline)
	if err != nil {
		return nil, err
	}

	goal, err := h.GoalService.CreateGoal(ctx, service.GoalCreate{
		UserID:       userID,
		Name:         input.Body.Name,
		TargetAmount: target,
		Deadline:     deadline,
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to create goal")
	}

	logging.GetLogData(ctx).AddData("goalID", goal.ID.String())
	return &CreateGoalOutput{Status: http.StatusCreated, Body: fromService(goal)}, nil
}
