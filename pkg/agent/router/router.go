package router

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
)

// Router classifies a user message into one of the candidate agents with a
// single completion call. It never fails: any transport error or unrecognized
// model output falls back to the general assistant.
type Router struct {
	logger *log.Logger
}

func NewRouter(logger *log.Logger) *Router {
	return &Router{logger: logger}
}

const routerMaxTokens = 50

// Classify resolves the agent label for a message. The provider is per-call
// because it is built from the requesting user's settings.
func (r *Router) Classify(ctx context.Context, provider llm.LLMProvider, message string) agent.AgentType {
	prompt := buildRouterPrompt(message)

	raw, err := provider.Generate(ctx, prompt,
		llm.WithTemperature(0),
		llm.WithMaxTokens(routerMaxTokens),
	)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[WARN] agent router failed, falling back to general assistant: %v", err)
		}
		return agent.AgentGeneralAssistant
	}

	label, ok := agent.ParseAgentType(cleanRouterOutput(raw))
	if !ok && r.logger != nil {
		r.logger.Printf("[WARN] agent router returned unknown label %q, falling back", raw)
	}
	return label
}

func buildRouterPrompt(message string) string {
	var sb strings.Builder
	sb.WriteString("You are an agent router. Your job is to determine the best agent to handle a user's request. Based on the user's message, select one of the following agents:\n")
	for _, c := range agent.Candidates {
		sb.WriteString(fmt.Sprintf("- '%s': %s\n", c.Value, c.Description))
	}
	sb.WriteString(fmt.Sprintf("\nUser message: %q\n\nRespond with ONLY the agent name (e.g., 'task_breakdown').", message))
	return sb.String()
}

// cleanRouterOutput strips the whitespace and quote characters models tend to
// wrap the label in.
func cleanRouterOutput(raw string) string {
	out := strings.TrimSpace(raw)
	out = strings.Trim(out, "'\"`")
	return strings.TrimSpace(out)
}
