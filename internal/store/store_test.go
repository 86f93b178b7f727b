package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConversationRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewConversationStore(db)

	conv := &models.Conversation{
		ID:    "conv-1",
		Title: "first conversation",
		Messages: []models.Message{
			{ID: "m1", Role: models.RoleUser, Content: "hello", Timestamp: 100},
			{ID: "m2", Role: models.RoleAssistant, Content: "hi there", Timestamp: 101},
		},
		CreatedAt: 100,
		UpdatedAt: 101,
	}
	if err := s.Put(conv); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetByID("conv-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected conversation, got nil")
	}
	if got.Title != "first conversation" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].ID != "m1" || got.Messages[1].ID != "m2" {
		t.Errorf("message order not preserved: %s, %s", got.Messages[0].ID, got.Messages[1].ID)
	}
	if got.Messages[1].Role != models.RoleAssistant {
		t.Errorf("role = %q", got.Messages[1].Role)
	}
}

func TestConversationPutOverwrites(t *testing.T) {
	db := newTestDB(t)
	s := NewConversationStore(db)

	conv := &models.Conversation{ID: "conv-1", Title: "before", CreatedAt: 100, UpdatedAt: 100}
	if err := s.Put(conv); err != nil {
		t.Fatalf("put: %v", err)
	}

	conv.Title = "after"
	conv.Messages = []models.Message{{ID: "m1", Role: models.RoleUser, Content: "x", Timestamp: 101}}
	conv.UpdatedAt = 101
	if err := s.Put(conv); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := s.GetByID("conv-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "after" {
		t.Errorf("title = %q, want overwrite", got.Title)
	}
	if len(got.Messages) != 1 {
		t.Errorf("messages = %d, want 1", len(got.Messages))
	}

	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("conversations = %d, want 1 after overwrite", len(all))
	}
}

func TestConversationGetAllOrder(t *testing.T) {
	db := newTestDB(t)
	s := NewConversationStore(db)

	for _, c := range []*models.Conversation{
		{ID: "old", CreatedAt: 100, UpdatedAt: 100},
		{ID: "new", CreatedAt: 300, UpdatedAt: 300},
		{ID: "mid", CreatedAt: 200, UpdatedAt: 200},
	} {
		if err := s.Put(c); err != nil {
			t.Fatalf("put %s: %v", c.ID, err)
		}
	}

	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("conversations = %d, want 3", len(all))
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, all[i].ID, id)
		}
	}
}

func TestConversationDeleteAbsentIsNoOp(t *testing.T) {
	db := newTestDB(t)
	s := NewConversationStore(db)

	if err := s.Delete("does-not-exist"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	got, err := s.GetByID("does-not-exist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for absent conversation")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	m := &models.MemoryEntry{
		ID:           "mem-1",
		Content:      "User likes hiking",
		Category:     models.CategoryPreferences,
		Importance:   6,
		Tags:         []string{"profile:alex"},
		CreatedAt:    100,
		LastAccessed: 100,
	}
	if err := s.Put(m); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetByID("mem-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.Category != models.CategoryPreferences || got.Importance != 6 {
		t.Errorf("got category %q importance %d", got.Category, got.Importance)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "profile:alex" {
		t.Errorf("tags = %v", got.Tags)
	}

	if err := s.Delete("mem-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("mem-1"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestMemoryCorruptTagsSurface(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	_, err := db.Exec(`
		INSERT INTO memories (id, content, category, importance, tags, created_at, last_accessed)
		VALUES ('bad', 'x', 'other', 1, '{not json', 100, 100)
	`)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	_, err = s.GetByID("bad")
	if err == nil {
		t.Fatal("expected an error for a corrupt tags column")
	}
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("error is %T, want *StorageError", err)
	}

	_, err = s.GetAll()
	if err == nil {
		t.Fatal("expected list to surface the corrupt row")
	}
}

func TestMemoryTopByImportance(t *testing.T) {
	db := newTestDB(t)
	s := NewMemoryStore(db)

	for _, m := range []*models.MemoryEntry{
		{ID: "low", Content: "a", Category: models.CategoryOther, Importance: 2, CreatedAt: 100, LastAccessed: 100},
		{ID: "high", Content: "b", Category: models.CategoryOther, Importance: 9, CreatedAt: 200, LastAccessed: 200},
		{ID: "mid", Content: "c", Category: models.CategoryOther, Importance: 5, CreatedAt: 300, LastAccessed: 300},
	} {
		if err := s.Put(m); err != nil {
			t.Fatalf("put %s: %v", m.ID, err)
		}
	}

	top, err := s.TopByImportance(2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("top = %d entries, want 2", len(top))
	}
	if top[0].ID != "high" || top[1].ID != "mid" {
		t.Errorf("top order = %s, %s", top[0].ID, top[1].ID)
	}
}

func TestPromptRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewPromptStore(db)

	p := &models.PromptTemplate{ID: "p1", Name: "greeting", Content: "Say hello", CreatedAt: 100, UpdatedAt: 100}
	if err := s.Put(p); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.GetByID("p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "greeting" {
		t.Fatalf("got %+v", got)
	}

	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("prompts = %d, want 1", len(all))
	}

	if err := s.Delete("p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = s.GetByID("p1")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil after delete")
	}
}

func TestSettingsStore(t *testing.T) {
	db := newTestDB(t)
	s := NewSettingsStore(db)

	app, err := s.AppSettings()
	if err != nil {
		t.Fatalf("app settings: %v", err)
	}
	if app != nil {
		t.Fatal("expected nil app settings before first write")
	}

	want := &models.AppSettings{SystemPrompt: "be brief", Model: "gpt-4o", Temperature: 0.3}
	if err := s.PutAppSettings(want); err != nil {
		t.Fatalf("put app settings: %v", err)
	}
	app, err = s.AppSettings()
	if err != nil {
		t.Fatalf("app settings: %v", err)
	}
	if app == nil || app.Model != "gpt-4o" || app.Temperature != 0.3 {
		t.Fatalf("got %+v", app)
	}

	id, err := s.ActiveConversationID()
	if err != nil {
		t.Fatalf("active conversation id: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty before first write", id)
	}
	if err := s.PutActiveConversationID("conv-7"); err != nil {
		t.Fatalf("put active conversation id: %v", err)
	}
	id, err = s.ActiveConversationID()
	if err != nil {
		t.Fatalf("active conversation id: %v", err)
	}
	if id != "conv-7" {
		t.Errorf("id = %q", id)
	}
	if err := s.ClearActiveConversationID(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	id, err = s.ActiveConversationID()
	if err != nil {
		t.Fatalf("active conversation id: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q after clear", id)
	}

	profiles := []models.Profile{{ID: "work", Name: "Work", Model: "gpt-4o", Temperature: 0.2}}
	if err := s.PutProfiles(profiles); err != nil {
		t.Fatalf("put profiles: %v", err)
	}
	got, err := s.Profiles()
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(got) != 1 || got[0].ID != "work" {
		t.Fatalf("profiles = %+v", got)
	}
}
