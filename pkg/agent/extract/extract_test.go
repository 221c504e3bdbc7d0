package extract

import (
	"strings"
	"testing"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
)

func TestBranch(t *testing.T) {
	tests := []struct {
		name    string
		label   agent.AgentType
		message string
		want    agent.AgentType
	}{
		{"router label wins by default", agent.AgentResearch, "what is gradient descent", agent.AgentResearch},
		{"save note phrase overrides", agent.AgentGeneralAssistant, "please save note about compilers", agent.AgentNoteTaker},
		{"create note phrase overrides", agent.AgentResearch, "Create note: today's standup", agent.AgentNoteTaker},
		{"break down phrase overrides", agent.AgentGeneralAssistant, "Break down learning Rust for me", agent.AgentTaskBreakdown},
		{"subtasks phrase overrides", agent.AgentGeneralAssistant, "give me subtasks for this project", agent.AgentTaskBreakdown},
		{"phrases are case insensitive", agent.AgentGeneralAssistant, "SAVE NOTE now", agent.AgentNoteTaker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Branch(tt.label, tt.message); got != tt.want {
				t.Errorf("Branch(%q, %q) = %q, want %q", tt.label, tt.message, got, tt.want)
			}
		})
	}
}

func TestParseNote(t *testing.T) {
	t.Run("heading becomes title, rest becomes content", func(t *testing.T) {
		draft := ParseNote("## Binary Search\nHalve the range each step.\nO(log n).", agent.AgentNoteTaker)
		if draft.Title != "Binary Search" {
			t.Errorf("title = %q", draft.Title)
		}
		if !strings.Contains(draft.Content, "Halve the range") {
			t.Errorf("content = %q", draft.Content)
		}
	})

	t.Run("plain first line is kept as title", func(t *testing.T) {
		draft := ParseNote("Shopping reminders\nBuy milk.", agent.AgentNoteTaker)
		if draft.Title != "Shopping reminders" {
			t.Errorf("title = %q", draft.Title)
		}
	})

	t.Run("blank response falls back to default title", func(t *testing.T) {
		draft := ParseNote("   \n  ", agent.AgentNoteTaker)
		if draft.Title != "AI Generated Note" {
			t.Errorf("title = %q", draft.Title)
		}
	})

	t.Run("tags carry origin and agent label", func(t *testing.T) {
		draft := ParseNote("# T\nbody", agent.AgentNoteTaker)
		if len(draft.Tags) != 2 || draft.Tags[0] != "ai-generated" || draft.Tags[1] != string(agent.AgentNoteTaker) {
			t.Errorf("tags = %v", draft.Tags)
		}
	})
}

func TestParseTasks(t *testing.T) {
	t.Run("bulleted lines become subtasks", func(t *testing.T) {
		response := "Here is the breakdown:\n" +
			"1. Install the toolchain\n" +
			"2. Read the tour\n" +
			"- Write a CLI\n" +
			"• Ship it\n"
		draft := ParseTasks("Break down learning Go", response)
		if len(draft.Subtasks) != 4 {
			t.Fatalf("got %d subtasks: %v", len(draft.Subtasks), draft.Subtasks)
		}
		if draft.Subtasks[0] != "Install the toolchain" {
			t.Errorf("first subtask = %q", draft.Subtasks[0])
		}
		if draft.ParentTitle != "learning Go" {
			t.Errorf("parent title = %q", draft.ParentTitle)
		}
	})

	t.Run("prose without markers yields no subtasks", func(t *testing.T) {
		draft := ParseTasks("break down this", "You should start small and iterate often.")
		if len(draft.Subtasks) != 0 {
			t.Errorf("got %d subtasks: %v", len(draft.Subtasks), draft.Subtasks)
		}
	})

	t.Run("subtask count is capped", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 25; i++ {
			b.WriteString("- step\n")
		}
		draft := ParseTasks("break down everything", b.String())
		if len(draft.Subtasks) != MaxSubtasks {
			t.Errorf("got %d subtasks, want %d", len(draft.Subtasks), MaxSubtasks)
		}
	})

	t.Run("parent title falls back when message is only the phrase", func(t *testing.T) {
		draft := ParseTasks("break down", "- a\n- b")
		if draft.ParentTitle != "AI Generated Task Plan" {
			t.Errorf("parent title = %q", draft.ParentTitle)
		}
	})
}

func TestParsePlan(t *testing.T) {
	valid := `Sure, here you go:
{
  "title": "Go in Three Weeks",
  "subject": "Go",
  "description": "From zero to services.",
  "difficulty_level": "beginner",
  "modules": [
    {"title": "Syntax", "description": "Basics", "estimatedHours": 5, "resources": ["tour"]},
    {"title": "Concurrency", "description": "Goroutines", "estimatedHours": 8, "resources": []}
  ]
}`

	t.Run("valid JSON produces a draft", func(t *testing.T) {
		draft, err := ParsePlan(valid)
		if err != nil {
			t.Fatalf("ParsePlan: %v", err)
		}
		if draft.Title != "Go in Three Weeks" || draft.Subject != "Go" {
			t.Errorf("draft = %+v", draft)
		}
		if len(draft.Modules) != 2 {
			t.Fatalf("got %d modules", len(draft.Modules))
		}
		// 13 hours at 2 hours a day rounds up to 7 days.
		if draft.EstimatedDays != 7 {
			t.Errorf("estimated days = %d", draft.EstimatedDays)
		}
		for i, m := range draft.Modules {
			if m.Id == "" {
				t.Errorf("module %d has empty id", i)
			}
			if m.Completed {
				t.Errorf("module %d starts completed", i)
			}
		}
		if draft.Modules[0].Id == draft.Modules[1].Id {
			t.Error("module ids are not unique")
		}
	})

	t.Run("missing title derives one from subject", func(t *testing.T) {
		draft, err := ParsePlan(`{"subject": "Rust", "modules": []}`)
		if err != nil {
			t.Fatalf("ParsePlan: %v", err)
		}
		if draft.Title != "AI Plan for Rust" {
			t.Errorf("title = %q", draft.Title)
		}
		if draft.DifficultyLevel != "beginner" {
			t.Errorf("difficulty = %q", draft.DifficultyLevel)
		}
	})

	t.Run("truncated JSON is an error", func(t *testing.T) {
		if _, err := ParsePlan(`{"title": "Go", "modules": [{"title": "Syn`); err == nil {
			t.Error("expected error for truncated JSON")
		}
	})

	t.Run("no JSON at all is an error", func(t *testing.T) {
		if _, err := ParsePlan("I cannot draft a plan right now."); err == nil {
			t.Error("expected error for plain prose")
		}
	})

	t.Run("empty subject and title is rejected", func(t *testing.T) {
		if _, err := ParsePlan(`{"modules": []}`); err == nil {
			t.Error("expected error for anonymous plan")
		}
	})
}
