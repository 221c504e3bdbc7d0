package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     agent.AgentType
	}{
		{
			name:     "exact label",
			response: "task_breakdown",
			want:     agent.AgentTaskBreakdown,
		},
		{
			name:     "label wrapped in quotes",
			response: "'note_taker'",
			want:     agent.AgentNoteTaker,
		},
		{
			name:     "label with surrounding whitespace",
			response: "  research\n",
			want:     agent.AgentResearch,
		},
		{
			name:     "garbage output falls back",
			response: "I think the best agent would be the task one",
			want:     agent.AgentGeneralAssistant,
		},
		{
			name:     "empty output falls back",
			response: "",
			want:     agent.AgentGeneralAssistant,
		},
		{
			name: "provider error falls back",
			err:  errors.New("connection refused"),
			want: agent.AgentGeneralAssistant,
		},
	}

	r := NewRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{response: tt.response, err: tt.err}
			got := r.Classify(context.Background(), provider, "break this down for me")
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildRouterPromptListsAllCandidates(t *testing.T) {
	prompt := buildRouterPrompt("teach me chess")
	for _, c := range agent.Candidates {
		if !strings.Contains(prompt, "'"+string(c.Value)+"'") {
			t.Errorf("router prompt missing candidate %q", c.Value)
		}
	}
}
