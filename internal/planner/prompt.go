package planner

import (
	"fmt"
	"strings"

	"gymdash/internal/history"
)

// buildPrompt renders a Request into the instruction sent to the model. The
// model is told to answer with a single JSON object so the payload can be
// stored and rendered without post-processing.
func buildPrompt(req Request) string {
	var b strings.Builder

	switch req.Kind {
	case history.KindDiet:
		b.WriteString("You are a nutrition coach at a gym. Draft a weekly diet plan")
	case history.KindWorkout:
		b.WriteString("You are a personal trainer at a gym. Draft a weekly workout plan")
	}

	if req.OwnerLabel != "" {
		fmt.Fprintf(&b, " for %s", req.OwnerLabel)
	}
	b.WriteString(".\n")

	if req.Goal != "" {
		fmt.Fprintf(&b, "Goal: %s.\n", req.Goal)
	}
	if len(req.Restrictions) > 0 {
		fmt.Fprintf(&b, "Restrictions: %s.\n", strings.Join(req.Restrictions, ", "))
	}
	if req.DaysPerWeek > 0 {
		fmt.Fprintf(&b, "Plan for %d days per week.\n", req.DaysPerWeek)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Additional notes: %s\n", req.Notes)
	}

	b.WriteString("Respond with a single JSON object containing the plan, ")
	b.WriteString("with a \"name\" field and a \"notes\" field of markdown guidance.")
	return b.String()
}
