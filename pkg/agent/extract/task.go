package extract

import (
	"regexp"
	"strings"
)

// MaxSubtasks caps how many child tasks one reply may create.
const MaxSubtasks = 10

var (
	numberedLine   = regexp.MustCompile(`^\d+\.`)
	listMarkers    = regexp.MustCompile(`^[•\-\d.]+\s*`)
	breakDownPhase = regexp.MustCompile(`(?i)break down`)
)

// TaskDraft is a parsed parent task plus its extracted subtasks. Zero subtasks
// is valid: the parent is still created.
type TaskDraft struct {
	ParentTitle string
	Subtasks    []string
}

// ParseTasks scans the reply for bullet or numbered list lines and derives the
// parent title from the original message. Lines without a list marker are
// ignored; the prompt asks for a list, so unmarked replies yield an empty
// breakdown rather than guessed subtasks.
func ParseTasks(originalMessage, response string) TaskDraft {
	var subtasks []string
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.Contains(trimmed, "•") && !strings.Contains(trimmed, "-") && !numberedLine.MatchString(trimmed) {
			continue
		}

		task := strings.TrimSpace(listMarkers.ReplaceAllString(trimmed, ""))
		if task == "" {
			continue
		}

		subtasks = append(subtasks, task)
		if len(subtasks) == MaxSubtasks {
			break
		}
	}

	title := strings.TrimSpace(breakDownPhase.ReplaceAllString(originalMessage, ""))
	if title == "" {
		title = "AI Generated Task Plan"
	}

	return TaskDraft{
		ParentTitle: title,
		Subtasks:    subtasks,
	}
}
