package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

const memoryColumns = `id, content, category, importance, tags, created_at, last_accessed`

// MemoryStore handles memory entry persistence.
type MemoryStore struct {
	db *DB
}

func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Put inserts or fully overwrites a memory entry by id.
func (s *MemoryStore) Put(m *models.MemoryEntry) error {
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return storageErr("put memory", fmt.Errorf("encode tags: %w", err))
	}
	_, err = s.db.Exec(`
		INSERT INTO memories (id, content, category, importance, tags, created_at, last_accessed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			category = excluded.category,
			importance = excluded.importance,
			tags = excluded.tags,
			created_at = excluded.created_at,
			last_accessed = excluded.last_accessed
	`, m.ID, m.Content, string(m.Category), m.Importance, string(tags), m.CreatedAt, m.LastAccessed)
	return storageErr("put memory", err)
}

// GetByID fetches a single entry, or nil if absent.
func (s *MemoryStore) GetByID(id string) (*models.MemoryEntry, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM memories WHERE id = ?`, memoryColumns), id)
	m, err := scanMemory(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get memory", err)
	}
	return m, nil
}

// GetAll returns every entry, newest-created-first.
func (s *MemoryStore) GetAll() ([]*models.MemoryEntry, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM memories ORDER BY created_at DESC`, memoryColumns))
	if err != nil {
		return nil, storageErr("list memories", err)
	}
	defer rows.Close()
	return scanMemories(rows)
}

// ListByCategory returns entries of one category, newest-created-first.
func (s *MemoryStore) ListByCategory(cat models.Category) ([]*models.MemoryEntry, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM memories WHERE category = ? ORDER BY created_at DESC`, memoryColumns),
		string(cat))
	if err != nil {
		return nil, storageErr("list memories", err)
	}
	defer rows.Close()
	return scanMemories(rows)
}

// TopByImportance returns the n highest-importance entries. This is the
// persisted query; the relevance policy consulted for prompt assembly lives
// in the memory engine, not here.
func (s *MemoryStore) TopByImportance(n int) ([]*models.MemoryEntry, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM memories ORDER BY importance DESC, created_at DESC LIMIT ?`, memoryColumns), n)
	if err != nil {
		return nil, storageErr("top memories", err)
	}
	defer rows.Close()
	return scanMemories(rows)
}

// Delete removes an entry by id. Deleting an absent id is a no-op.
func (s *MemoryStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM memories WHERE id = ?", id)
	return storageErr("delete memory", err)
}

func scanMemory(scan func(...any) error) (*models.MemoryEntry, error) {
	var m models.MemoryEntry
	var tags sql.NullString
	if err := scan(&m.ID, &m.Content, &m.Category, &m.Importance, &tags, &m.CreatedAt, &m.LastAccessed); err != nil {
		return nil, err
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &m.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &m, nil
}

func scanMemories(rows *sql.Rows) ([]*models.MemoryEntry, error) {
	var result []*models.MemoryEntry
	for rows.Next() {
		m, err := scanMemory(rows.Scan)
		if err != nil {
			return nil, storageErr("scan memory", err)
		}
		result = append(result, m)
	}
	return result, storageErr("scan memories", rows.Err())
}
