package memory

import (
	"regexp"
	"strings"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// Candidate is a proposed memory entry produced by extraction.
type Candidate struct {
	Content    string
	Category   models.Category
	Importance int
}

const (
	preferenceImportance = 6
	personalImportance   = 8
	goalImportance       = 7
)

// clauseEnd bounds a matched phrase at punctuation, a coordinating
// conjunction, or the end of the message. The conjunction is consumed so the
// scan resumes at the start of the next clause.
const clauseEnd = `(?:[.,;!?]|\s+(?:and|but)\s+|$)`

var preferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(i\s+(?:like|love|prefer|enjoy|want|need)\s+[^.,;!?]+?)` + clauseEnd),
	regexp.MustCompile(`(?i)\b(my\s+(?:favou?rite|preference)s?\s+[^.,;!?]*?(?:is|are)\s+[^.,;!?]+?)` + clauseEnd),
}

var personalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b((?:my name is|i'?m called|call me)\s+[^.,;!?]+?)` + clauseEnd),
	regexp.MustCompile(`(?i)\b(i\s+(?:am|work as)\s+(?:an?\s+)?[^.,;!?]+?)` + clauseEnd),
	regexp.MustCompile(`(?i)\b(i\s+(?:live in|am from)\s+[^.,;!?]+?)` + clauseEnd),
}

var goalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bi\s+(?:want|plan|hope|aim)\s+to\s+([^.,;!?]+?)` + clauseEnd),
	regexp.MustCompile(`(?i)\bmy\s+goal\s+is\s+to\s+([^.,;!?]+?)` + clauseEnd),
}

// Extract scans a user message for memorable phrases and returns candidate
// entries. Pure pattern matching: no model call, no I/O. Each pattern family
// is scanned independently and globally, so one message can yield several
// candidates. No deduplication against existing memories happens here;
// duplicates are allowed to accumulate. Assistant text is never scanned.
func Extract(userText string) []Candidate {
	var out []Candidate

	for _, re := range preferencePatterns {
		for _, m := range re.FindAllStringSubmatch(userText, -1) {
			out = append(out, Candidate{
				Content:    "User " + strings.ToLower(strings.TrimSpace(m[1])),
				Category:   models.CategoryPreferences,
				Importance: preferenceImportance,
			})
		}
	}

	for _, re := range personalPatterns {
		for _, m := range re.FindAllStringSubmatch(userText, -1) {
			out = append(out, Candidate{
				Content:    strings.TrimSpace(m[1]),
				Category:   models.CategoryPersonal,
				Importance: personalImportance,
			})
		}
	}

	for _, re := range goalPatterns {
		for _, m := range re.FindAllStringSubmatch(userText, -1) {
			out = append(out, Candidate{
				Content:    "User wants to " + strings.TrimSpace(m[1]),
				Category:   models.CategoryOther,
				Importance: goalImportance,
			})
		}
	}

	return out
}

// StoreCandidates persists candidates through the engine and returns how many
// entries were created. Individual failures are logged and skipped.
func (e *Engine) StoreCandidates(candidates []Candidate, tags []string) int {
	created := 0
	for _, c := range candidates {
		if _, err := e.Add(c.Content, c.Category, c.Importance, tags); err != nil {
			e.logger.Warn("extracted memory not saved", "error", err)
			continue
		}
		created++
	}
	return created
}

// ExtractAndStore runs extraction over the user half of a completed exchange
// and persists the results, returning the number of entries created.
func (e *Engine) ExtractAndStore(userText string, tags []string) int {
	return e.StoreCandidates(Extract(userText), tags)
}
