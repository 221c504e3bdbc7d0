package extract

import (
	"regexp"
	"strings"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent"
)

var headingMarkers = regexp.MustCompile(`^#+\s*`)

// NoteDraft is a parsed note ready for insertion.
type NoteDraft struct {
	Title   string
	Content string
	Tags    []string
}

// ParseNote turns a model reply into a note. The first non-blank line (with
// any markdown heading markers stripped) becomes the title, the rest the
// content. Falls back to the whole reply as content when there is nothing
// after the title line.
func ParseNote(response string, label agent.AgentType) NoteDraft {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	title := "AI Generated Note"
	if len(lines) > 0 {
		if t := headingMarkers.ReplaceAllString(lines[0], ""); t != "" {
			title = t
		}
	}

	content := response
	if len(lines) > 1 {
		content = strings.Join(lines[1:], "\n")
	}

	return NoteDraft{
		Title:   title,
		Content: content,
		Tags:    []string{"ai-generated", string(label)},
	}
}
