package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dustinkb1983/nyxchat/internal/models"
)

// Settings keys. Each key holds one JSON document; the configuration surface
// is written by the settings UI and read by the resolver and controller.
const (
	keyAppSettings        = "app_settings"
	keyProfiles           = "profiles"
	keyCustomModels       = "custom_models"
	keyDeletedModels      = "deleted_models"
	keyActiveProfile      = "active_profile"
	keyActiveConversation = "active_conversation"
)

// SettingsStore is a small JSON document store over the settings table.
type SettingsStore struct {
	db *DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return storageErr("put setting", fmt.Errorf("encode %s: %w", key, err))
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(data))
	return storageErr("put setting", err)
}

// get decodes the document at key into v; ok is false when the key is unset.
func (s *SettingsStore) get(key string, v any) (bool, error) {
	var data string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, storageErr("get setting", err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, storageErr("get setting", fmt.Errorf("decode %s: %w", key, err))
	}
	return true, nil
}

func (s *SettingsStore) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return storageErr("delete setting", err)
}

// AppSettings returns the stored application-wide settings, or nil if unset.
func (s *SettingsStore) AppSettings() (*models.AppSettings, error) {
	var app models.AppSettings
	ok, err := s.get(keyAppSettings, &app)
	if err != nil || !ok {
		return nil, err
	}
	return &app, nil
}

func (s *SettingsStore) PutAppSettings(app *models.AppSettings) error {
	return s.put(keyAppSettings, app)
}

func (s *SettingsStore) Profiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if _, err := s.get(keyProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *SettingsStore) PutProfiles(profiles []models.Profile) error {
	return s.put(keyProfiles, profiles)
}

func (s *SettingsStore) CustomModels() ([]models.CustomModel, error) {
	var custom []models.CustomModel
	if _, err := s.get(keyCustomModels, &custom); err != nil {
		return nil, err
	}
	return custom, nil
}

func (s *SettingsStore) PutCustomModels(custom []models.CustomModel) error {
	return s.put(keyCustomModels, custom)
}

func (s *SettingsStore) DeletedModelIDs() ([]string, error) {
	var ids []string
	if _, err := s.get(keyDeletedModels, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SettingsStore) PutDeletedModelIDs(ids []string) error {
	return s.put(keyDeletedModels, ids)
}

// ActiveProfileID returns the active profile id, or "" meaning global.
func (s *SettingsStore) ActiveProfileID() (string, error) {
	var id string
	if _, err := s.get(keyActiveProfile, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SettingsStore) PutActiveProfileID(id string) error {
	return s.put(keyActiveProfile, id)
}

// ActiveConversationID returns the conversation that should reopen on the
// next launch, or "" if none is remembered.
func (s *SettingsStore) ActiveConversationID() (string, error) {
	var id string
	if _, err := s.get(keyActiveConversation, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SettingsStore) PutActiveConversationID(id string) error {
	return s.put(keyActiveConversation, id)
}

func (s *SettingsStore) ClearActiveConversationID() error {
	return s.delete(keyActiveConversation)
}
