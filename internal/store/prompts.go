package store

import (
	"database/sql"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// PromptStore handles prompt template persistence.
type PromptStore struct {
	db *DB
}

func NewPromptStore(db *DB) *PromptStore {
	return &PromptStore{db: db}
}

// Put inserts or fully overwrites a template by id.
func (s *PromptStore) Put(p *models.PromptTemplate) error {
	_, err := s.db.Exec(`
		INSERT INTO prompts (id, name, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, p.Content, p.CreatedAt, p.UpdatedAt)
	return storageErr("put prompt", err)
}

// GetByID fetches a single template, or nil if absent.
func (s *PromptStore) GetByID(id string) (*models.PromptTemplate, error) {
	var p models.PromptTemplate
	err := s.db.QueryRow(`
		SELECT id, name, content, created_at, updated_at FROM prompts WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get prompt", err)
	}
	return &p, nil
}

// GetAll returns every template, newest-created-first.
func (s *PromptStore) GetAll() ([]*models.PromptTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, name, content, created_at, updated_at
		FROM prompts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, storageErr("list prompts", err)
	}
	defer rows.Close()

	var result []*models.PromptTemplate
	for rows.Next() {
		var p models.PromptTemplate
		if err := rows.Scan(&p.ID, &p.Name, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storageErr("scan prompt", err)
		}
		result = append(result, &p)
	}
	return result, storageErr("list prompts", rows.Err())
}

// Delete removes a template by id. Deleting an absent id is a no-op.
func (s *PromptStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM prompts WHERE id = ?", id)
	return storageErr("delete prompt", err)
}
