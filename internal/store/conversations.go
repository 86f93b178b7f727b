package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// ConversationStore handles conversation persistence. Messages are stored as
// a JSON document per conversation: callers read-modify-write whole entries,
// there are no partial updates at this layer.
type ConversationStore struct {
	db *DB
}

func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Put inserts or fully overwrites a conversation by id.
func (s *ConversationStore) Put(c *models.Conversation) error {
	msgs, err := json.Marshal(c.Messages)
	if err != nil {
		return storageErr("put conversation", fmt.Errorf("encode messages: %w", err))
	}
	_, err = s.db.Exec(`
		INSERT INTO conversations (id, title, messages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			messages = excluded.messages,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, c.ID, c.Title, string(msgs), c.CreatedAt, c.UpdatedAt)
	return storageErr("put conversation", err)
}

// GetByID fetches a single conversation, or nil if absent.
func (s *ConversationStore) GetByID(id string) (*models.Conversation, error) {
	row := s.db.QueryRow(`
		SELECT id, title, messages, created_at, updated_at
		FROM conversations WHERE id = ?
	`, id)
	c, err := scanConversation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get conversation", err)
	}
	return c, nil
}

// GetAll returns every conversation, newest-created-first.
func (s *ConversationStore) GetAll() ([]*models.Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, title, messages, created_at, updated_at
		FROM conversations ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, storageErr("list conversations", err)
	}
	defer rows.Close()

	var result []*models.Conversation
	for rows.Next() {
		c, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, storageErr("list conversations", err)
		}
		result = append(result, c)
	}
	return result, storageErr("list conversations", rows.Err())
}

// Delete removes a conversation by id. Deleting an absent id is a no-op.
func (s *ConversationStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM conversations WHERE id = ?", id)
	return storageErr("delete conversation", err)
}

func scanConversation(scan func(...any) error) (*models.Conversation, error) {
	var c models.Conversation
	var msgs string
	if err := scan(&c.ID, &c.Title, &msgs, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(msgs), &c.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return &c, nil
}
