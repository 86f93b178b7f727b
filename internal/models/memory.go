package models

// Category classifies what kind of knowledge a memory entry holds.
type Category string

const (
	CategoryPersonal    Category = "personal"
	CategoryPreferences Category = "preferences"
	CategoryContext     Category = "context"
	CategoryKnowledge   Category = "knowledge"
	CategoryOther       Category = "other"
)

var ValidCategories = map[Category]bool{
	CategoryPersonal:    true,
	CategoryPreferences: true,
	CategoryContext:     true,
	CategoryKnowledge:   true,
	CategoryOther:       true,
}

func (c Category) IsValid() bool {
	return ValidCategories[c]
}

// Importance bounds and pinning semantics. Pinning is not a separate field:
// pinned entries are entries at importance 10, unpinning resets to 5, and any
// entry at or above PinThreshold counts as pinned in curated views.
const (
	MaxImportance      = 10
	MinImportance      = 0
	PinnedImportance   = 10
	UnpinnedImportance = 5
	PinThreshold       = 8
)

// MemoryEntry is a remembered fact, preference, or goal re-injected into
// future prompts. LastAccessed is bumped on every mutation; touching an entry
// counts as an access.
type MemoryEntry struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Category     Category `json:"category"`
	Importance   int      `json:"importance"`
	Tags         []string `json:"tags"`
	CreatedAt    int64    `json:"createdAt"`
	LastAccessed int64    `json:"lastAccessed"`
}

// Pinned reports whether the entry surfaces first in curated views.
func (m *MemoryEntry) Pinned() bool {
	return m.Importance >= PinThreshold
}

// ClampImportance forces a raw importance value into the valid range.
func ClampImportance(v int) int {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}
