package extract

import (
	"strings"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
)

// Action is reported back to the caller so the UI can refresh the right panel.
type Action string

const (
	ActionResponse    Action = "response"
	ActionNoteCreated Action = "note_created"
	ActionTasks       Action = "tasks_created"
	ActionPlanCreated Action = "learning_plan_created"
)

// Confirmation texts returned instead of the raw model output. The raw reply
// for these branches is working material, not something the user asked to read.
const (
	NoteConfirmation = "I've saved that as a note for you."
	TaskConfirmation = "I've created a new task plan based on your request."
)

// Branch resolves which extraction branch applies. Keyword overrides let an
// explicit "save note" win even when the router picked another agent.
func Branch(label agent.AgentType, message string) agent.AgentType {
	lower := strings.ToLower(message)

	if label == agent.AgentNoteTaker || strings.Contains(lower, "save note") || strings.Contains(lower, "create note") {
		return agent.AgentNoteTaker
	}
	if label == agent.AgentTaskBreakdown || strings.Contains(lower, "break down") || strings.Contains(lower, "subtasks") {
		return agent.AgentTaskBreakdown
	}
	return label
}
