package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

type goalReader interface {
	GetGoal(ctx context.Context, id uuid.UUID) (*service.Goal, error)
	ListGoalsByUser(ctx context.Context, userID uuid.UUID) ([]service.Goal, error)
}

type ReadGoalHandler struct {
	GoalService goalReader
}

func NewReadGoalHandler(svc goalReader) *ReadGoalHandler {
	return &ReadGoalHandler{GoalService: svc}
}

func (h *ReadGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-goal",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get a savings goal",
		Tags:        []string{"Goals"},
	}, h.get)
	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        basePath + "/user/{userId}",
		Summary:     "List a user's savings goals",
		Tags:        []string{"Goals"},
	}, h.list)
}

func (h *ReadGoalHandler) get(ctx context.Context, input *GoalIDInput) (*GoalOutput, error) {
	id, err := apierr.ParseUUID("id", input.ID)
	if err != nil {
		return nil, err
	}
	goal, err := h.GoalService.GetGoal(ctx, id)
	if err != nil {
		return nil, apierr.FromService(err, "failed to get goal")
	}
	return &GoalOutput{Body: fromService(goal)}, nil
}

type ListGoalsInput struct {
	UserID string `path:"userId" format:"uuid" doc:"Owning user UUID"`
}

type ListGoalsOutput struct {
	Body struct {
		Goals []Goal `json:"goals" doc:"Goals ordered by name"`
	}
}

func (h *ReadGoalHandler) list(ctx context.Context, input *ListGoalsInput) (*ListGoalsOutput, error) {
	userID, err := apierr.ParseUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	goals, err := h.GoalService.ListGoalsByUser(ctx, userID)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list goals")
	}

	out := &ListGoalsOutput{}
	out.Body.Goals = make([]Goal, len(goals))
	for i := range goals {
		out.Body.Goals[i] = fromService(&goals[i])
	}
	return out, nil
}
