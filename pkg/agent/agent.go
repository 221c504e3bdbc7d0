package agent

// AgentType is a closed label set. Every turn resolves to exactly one label;
// anything unrecognized collapses to AgentGeneralAssistant.
type AgentType string

const (
	AgentGeneralAssistant AgentType = "general_assistant"
	AgentResearch         AgentType = "research"
	AgentTaskBreakdown    AgentType = "task_breakdown"
	AgentLearningPlan     AgentType = "learning_plan"
	AgentNoteTaker        AgentType = "note_taker"
)

// Candidate describes a routable agent for the router prompt.
type Candidate struct {
	Value       AgentType
	Label       string
	Description string
}

// Candidates is the fixed routing table.
var Candidates = []Candidate{
	{AgentGeneralAssistant, "General Assistant", "For general questions, conversation, and advice."},
	{AgentResearch, "Research Assistant", "For requests that involve finding and summarizing information."},
	{AgentTaskBreakdown, "Task Breakdown Specialist", "For requests to break down a large goal or task into smaller steps."},
	{AgentLearningPlan, "Learning Plan Creator", "For requests to create a learning plan for a specific topic."},
	{AgentNoteTaker, "Note Taker", "For requests to save information as a note. Use this if the user says 'take a note', 'save this', or 'create a note'."},
}

// ParseAgentType returns the matching label and whether it is known.
func ParseAgentType(s string) (AgentType, bool) {
	for _, c := range Candidates {
		if string(c.Value) == s {
			return c.Value, true
		}
	}
	return AgentGeneralAssistant, false
}
