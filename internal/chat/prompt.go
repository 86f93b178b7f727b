package chat

import (
	"strings"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// MemoryBudgetBytes caps the memory-context block appended to the system
// prompt. It approximates an 800-token budget at four bytes per token; this
// is a deliberate coarse approximation, not a tokenizer.
const MemoryBudgetBytes = 800 * 4

// BuildSystemPrompt concatenates the base system prompt with a memory-context
// block built from the ranked entries. Entries are taken greedily in ranked
// order; the first entry that would exceed the budget stops the scan and is
// excluded entirely, never truncated.
func BuildSystemPrompt(base string, ranked []*models.MemoryEntry) string {
	var selected []*models.MemoryEntry
	used := 0
	for _, m := range ranked {
		if used+len(m.Content) > MemoryBudgetBytes {
			break
		}
		used += len(m.Content)
		selected = append(selected, m)
	}
	if len(selected) == 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\nThings to remember about the user:\n")
	for _, m := range selected {
		sb.WriteString("- ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
