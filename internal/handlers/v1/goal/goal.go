package goal

import (
	"github.com/carson-networks/bookkeeping-server/internal/handlers/v1/apierr"
	"github.com/carson-networks/bookkeeping-server/internal/service"
)

const basePath = "/v1/goals"

// Goal is the API response model for a savings goal.
type Goal struct {
	ID           string  `json:"id" doc:"Goal UUID"`
	UserID       string  `json:"userId" doc:"Owning user UUID"`
	Name         string  `json:"name" doc:"Goal name"`
	TargetAmount string  `json:"targetAmount" doc:"Decimal target"`
	SavedAmount  string  `json:"savedAmount" doc:"Decimal amount saved so far"`
	Deadline     *string `json:"deadline,omitempty" doc:"RFC3339 deadline"`
	CreatedAt    string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(g *service.Goal) Goal {
	return Goal{
		ID:           g.ID.String(),
		UserID:       g.UserID.String(),
		Name:         g.Name,
		TargetAmount: g.TargetAmount.String(),
		SavedAmount:  g.SavedAmount.String(),
		Deadline:     apierr.FormatOptionalTime(g.Deadline),
		CreatedAt:    apierr.FormatTime(g.CreatedAt),
	}
}

type GoalIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Goal UUID"`
}

type GoalOutput struct {
	Body Goal
}
