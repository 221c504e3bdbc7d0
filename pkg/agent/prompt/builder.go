package prompt

import (
	"fmt"
	"strings"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"
)

// Sentinel context strings injected into the research prompt when retrieval
// cannot produce usable chunks. The model is told plainly so it answers from
// general knowledge instead of hallucinating citations.
const (
	ContextNoneFound     = "I couldn't find any relevant information in your uploaded documents for this query. I will answer based on my general knowledge."
	ContextLookupError   = "I tried to access your documents, but encountered an error. I will answer based on my general knowledge."
	ContextSystemFailure = "I tried to access your documents, but a system error occurred. I will answer based on my general knowledge."
)

const (
	researchTemplate = `You are a research assistant. Your primary goal is to answer the user's question based on the context provided from their personal documents.
If the provided context is relevant, synthesize it to form a comprehensive answer.
If the context is not sufficient or relevant to the user's query, clearly state that you couldn't find an answer in their documents and then proceed to answer using your general knowledge.
---
%s
---`

	taskBreakdownPrompt = `You are a task breakdown specialist. Take the user's goal or task and break it down into smaller, actionable subtasks. Each subtask should be specific, measurable, and have a clear outcome. Respond with a list of tasks.`

	learningPlanPrompt = `You are a learning plan creator. The user wants a learning plan. Your task is to generate a comprehensive learning plan based on their request.
Respond with ONLY a single valid JSON object. Do not include any text before or after the JSON.
The JSON should have this structure: { "title": "Learning Plan for [Topic]", "subject": "[Topic]", "description": "A comprehensive plan...", "difficulty_level": "beginner" | "intermediate" | "advanced", "modules": [{ "title": "Module 1: ...", "description": "...", "estimatedHours": 2, "resources": ["resource 1"] }] }
Base the plan on the user's request.`

	noteTakerPrompt = `You are a note-taking assistant. Help organize and structure information into clear, searchable notes. Extract key points and create summaries. Start your response with a title for the note.`

	generalAssistantPrompt = `You are a helpful AI assistant focused on learning and productivity. Provide clear, actionable advice and help users achieve their goals.`
)

// ForAgent returns the system prompt for a label. documentContext is only used
// by the research agent; pass "" for everything else.
func ForAgent(agentType agent.AgentType, documentContext string) string {
	switch agentType {
	case agent.AgentResearch:
		if documentContext == "" {
			documentContext = "No context provided."
		}
		return fmt.Sprintf(researchTemplate, documentContext)
	case agent.AgentTaskBreakdown:
		return taskBreakdownPrompt
	case agent.AgentLearningPlan:
		return learningPlanPrompt
	case agent.AgentNoteTaker:
		return noteTakerPrompt
	default:
		return generalAssistantPrompt
	}
}

// FormatContext renders retrieval results as the context block for the
// research prompt.
func FormatContext(results []retrieval.Result) string {
	if len(results) == 0 {
		return ContextNoneFound
	}

	var sb strings.Builder
	sb.WriteString("Context from user's documents:\n")
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("- From document %q: %s", r.DocumentTitle, r.ChunkText))
		if i < len(results)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
