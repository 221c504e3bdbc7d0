package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// StudyHoursPerDay converts total estimated hours into a duration in days.
const StudyHoursPerDay = 2

// jsonObject grabs the first '{' through the last '}'. The prompt instructs
// the model to reply with only the JSON object; this tolerates stray prose
// around it.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// PlanModule is one unit of a learning plan. Id and Completed are always
// assigned fresh here, whatever the model claims.
type PlanModule struct {
	Id             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimatedHours"`
	Resources      []string `json:"resources,omitempty"`
	Completed      bool     `json:"completed"`
}

// PlanDraft is a validated learning plan ready for insertion.
type PlanDraft struct {
	Title           string
	Subject         string
	Description     string
	DifficultyLevel string
	Modules         []PlanModule
	EstimatedDays   int
}

type planPayload struct {
	Title           string `json:"title"`
	Subject         string `json:"subject"`
	Description     string `json:"description"`
	DifficultyLevel string `json:"difficulty_level"`
	Modules         []struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		EstimatedHours float64  `json:"estimatedHours"`
		Resources      []string `json:"resources"`
	} `json:"modules"`
}

// ParsePlan extracts and validates the single JSON learning plan in a reply.
// Any failure here is recoverable: the caller degrades to returning the raw
// text as a plain plan.
func ParsePlan(response string) (*PlanDraft, error) {
	match := jsonObject.FindString(response)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, fmt.Errorf("parse plan JSON: %w", err)
	}

	if strings.TrimSpace(payload.Subject) == "" && strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("plan JSON has neither subject nor title")
	}

	modules := make([]PlanModule, 0, len(payload.Modules))
	var totalHours float64
	for _, m := range payload.Modules {
		modules = append(modules, PlanModule{
			Id:             uuid.New().String(),
			Title:          m.Title,
			Description:    m.Description,
			EstimatedHours: m.EstimatedHours,
			Resources:      m.Resources,
			Completed:      false,
		})
		totalHours += m.EstimatedHours
	}

	title := payload.Title
	if title == "" {
		title = fmt.Sprintf("AI Plan for %s", payload.Subject)
	}
	description := payload.Description
	if description == "" {
		description = "An AI-generated learning plan."
	}
	difficulty := payload.DifficultyLevel
	if difficulty == "" {
		difficulty = "beginner"
	}

	return &PlanDraft{
		Title:           title,
		Subject:         payload.Subject,
		Description:     description,
		DifficultyLevel: difficulty,
		Modules:         modules,
		EstimatedDays:   int(math.Ceil(totalHours / StudyHoursPerDay)),
	}, nil
}

// PlanConfirmation is the user-facing text after a successful plan insert.
func PlanConfirmation(subject string) string {
	return fmt.Sprintf("I have created a new learning plan about %q. You can find it in the Learning Plans section.", subject)
}

// PlanFallback wraps the raw reply when the plan could not be stored as an
// interactive module.
func PlanFallback(raw string) string {
	return "I drafted a learning plan for you, but had trouble saving it as an interactive module. Here is the plan in text format:\n\n" + raw
}
