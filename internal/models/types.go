package models

// SendRequest is the payload for POST /chat/send.
type SendRequest struct {
	Content string `json:"content" validate:"required"`
}

// ChatResponse is returned from the send, retry, and activate endpoints.
type ChatResponse struct {
	Conversation *Conversation `json:"conversation"`
	Status       string        `json:"status"`
}

// CreateMemoryRequest is the payload for POST /memories.
type CreateMemoryRequest struct {
	Content    string   `json:"content" validate:"required"`
	Category   Category `json:"category"`
	Importance int      `json:"importance" validate:"gte=0,lte=10"`
	Tags       []string `json:"tags"`
}

// UpdateMemoryRequest is the payload for PATCH /memories/{id}. Nil fields are
// left untouched; any update bumps lastAccessed.
type UpdateMemoryRequest struct {
	Content    *string   `json:"content,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Importance *int      `json:"importance,omitempty" validate:"omitempty,gte=0,lte=10"`
	Tags       *[]string `json:"tags,omitempty"`
}

// ClearMemoriesResponse is returned from DELETE /memories.
type ClearMemoriesResponse struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// CreatePromptRequest is the payload for POST /prompts.
type CreatePromptRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePromptRequest is the payload for PATCH /prompts/{id}.
type UpdatePromptRequest struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
}

// UpdateSettingsRequest is the payload for PUT /settings.
type UpdateSettingsRequest struct {
	SystemPrompt string  `json:"systemPrompt"`
	Model        string  `json:"model" validate:"required"`
	Temperature  float64 `json:"temperature" validate:"gte=0,lte=1"`
}

// UpdateModelsRequest is the payload for PUT /settings/models: the
// user-defined models plus the built-in ids the user has removed.
type UpdateModelsRequest struct {
	Custom  []CustomModel `json:"custom"`
	Deleted []string      `json:"deleted"`
}

// ActiveProfileRequest is the payload for PUT /settings/active-profile.
type ActiveProfileRequest struct {
	ID string `json:"id" validate:"required"`
}

// SettingsResponse is returned from GET /settings.
type SettingsResponse struct {
	App             AppSettings   `json:"app"`
	Profiles        []Profile     `json:"profiles"`
	ActiveProfileID string        `json:"activeProfileId"`
	CustomModels    []CustomModel `json:"customModels"`
	DeletedModelIDs []string      `json:"deletedModelIds"`
	AvailableModels []string      `json:"availableModels"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status               string       `json:"status"`
	DB                   ServiceCheck `json:"db"`
	CompletionConfigured bool         `json:"completionConfigured"`
	MemoryCount          int          `json:"memoryCount"`
	ConversationCount    int          `json:"conversationCount"`
}

type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
