package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dustinkb1983/nyxchat/internal/completion"
	"github.com/dustinkb1983/nyxchat/internal/memory"
	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

// Status is the request state of the active conversation. It is explicit
// state held by the controller, never inferred from the tail message.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSending:
		return "sending"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

const titleMaxChars = 30

// Defaults carries the application-wide fallbacks from process configuration,
// used until the settings UI stores its own.
type Defaults struct {
	SystemPrompt string
	Model        string
	Temperature  float64
}

// Controller owns the active conversation and the send/retry pipeline. At
// most one request pipeline runs at a time: a send while one is in flight is
// rejected, never queued.
type Controller struct {
	conversations *store.ConversationStore
	settings      *store.SettingsStore
	engine        *memory.Engine
	client        *completion.Client
	builtIn       []string
	defaults      Defaults
	memoryLimit   int
	logger        *slog.Logger

	mu     sync.Mutex
	active *models.Conversation
	status Status

	extractWG sync.WaitGroup
}

// NewController creates the controller and reopens the conversation that was
// active when the process last ran, if it still exists.
func NewController(
	conversations *store.ConversationStore,
	settings *store.SettingsStore,
	engine *memory.Engine,
	client *completion.Client,
	builtIn []string,
	defaults Defaults,
	memoryLimit int,
	logger *slog.Logger,
) *Controller {
	c := &Controller{
		conversations: conversations,
		settings:      settings,
		engine:        engine,
		client:        client,
		builtIn:       builtIn,
		defaults:      defaults,
		memoryLimit:   memoryLimit,
		logger:        logger,
		status:        StatusIdle,
	}

	id, err := settings.ActiveConversationID()
	if err != nil {
		logger.Warn("active conversation not restored", "error", err)
		return c
	}
	if id == "" {
		return c
	}
	conv, err := conversations.GetByID(id)
	if err != nil {
		logger.Warn("active conversation not restored", "id", id, "error", err)
		return c
	}
	c.active = conv
	return c
}

// Close waits for background memory extraction to finish.
func (c *Controller) Close() {
	c.extractWG.Wait()
}

// Status returns the current request state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Active returns a snapshot of the active conversation, or nil.
func (c *Controller) Active() *models.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneConversation(c.active)
}

// List returns every persisted conversation, newest-created-first.
func (c *Controller) List() ([]*models.Conversation, error) {
	return c.conversations.GetAll()
}

// Get returns one persisted conversation, or nil if absent.
func (c *Controller) Get(id string) (*models.Conversation, error) {
	return c.conversations.GetByID(id)
}

// SendMessage appends a user turn to the active conversation (creating one if
// none is active), persists it before any network traffic, and runs the
// request pipeline. Empty or whitespace-only content is rejected with no
// state change.
func (c *Controller) SendMessage(ctx context.Context, content string) (*models.Conversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return nil, models.ErrBusy
	}

	now := time.Now().Unix()
	if c.active == nil {
		c.active = &models.Conversation{
			ID:        uuid.New().String(),
			Title:     deriveTitle(content),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := c.settings.PutActiveConversationID(c.active.ID); err != nil {
			c.logger.Warn("active conversation id not saved", "error", err)
		}
	}

	conv := c.active
	conv.Messages = append(conv.Messages, models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: now,
	})
	if len(conv.Messages) == 1 {
		conv.Title = deriveTitle(content)
	}
	conv.UpdatedAt = now

	// Optimistic write: the user's message is durable before the network
	// call so it survives a crash mid-request.
	c.persistLocked(conv)
	c.status = StatusSending
	c.mu.Unlock()

	c.runPipeline(ctx, conv)
	return c.Active(), nil
}

// Retry strips the trailing error turns from the active conversation and
// re-runs the pipeline on what remains. Errors only ever accumulate at the
// tail, so this also covers a dangling user message left by a crash.
func (c *Controller) Retry(ctx context.Context) (*models.Conversation, error) {
	c.mu.Lock()
	if c.active == nil {
		c.mu.Unlock()
		return nil, models.ErrNoConversation
	}
	if c.status == StatusSending {
		c.mu.Unlock()
		return nil, models.ErrBusy
	}

	conv := c.active
	stripped := false
	for len(conv.Messages) > 0 {
		last := conv.Messages[len(conv.Messages)-1]
		if last.Role != models.RoleAssistant || !last.Error {
			break
		}
		conv.Messages = conv.Messages[:len(conv.Messages)-1]
		stripped = true
	}

	// Nothing to retry unless a user turn is now waiting for its reply.
	if len(conv.Messages) == 0 || conv.Messages[len(conv.Messages)-1].Role != models.RoleUser {
		c.mu.Unlock()
		return c.Active(), nil
	}

	if stripped {
		conv.UpdatedAt = time.Now().Unix()
		c.persistLocked(conv)
	}
	c.status = StatusSending
	c.mu.Unlock()

	c.runPipeline(ctx, conv)
	return c.Active(), nil
}

// NewConversation clears the active pointer. Nothing is deleted and nothing
// is created until the next send.
func (c *Controller) NewConversation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSending {
		return models.ErrBusy
	}
	c.active = nil
	c.status = StatusIdle
	if err := c.settings.ClearActiveConversationID(); err != nil {
		c.logger.Warn("active conversation id not cleared", "error", err)
	}
	return nil
}

// DeleteConversation removes a conversation from the store; if it was the
// active one, the active pointer is cleared as well.
func (c *Controller) DeleteConversation(id string) error {
	c.mu.Lock()
	if c.status == StatusSending && c.active != nil && c.active.ID == id {
		c.mu.Unlock()
		return models.ErrBusy
	}
	c.mu.Unlock()

	if err := c.conversations.Delete(id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil && c.active.ID == id {
		c.active = nil
		c.status = StatusIdle
		if err := c.settings.ClearActiveConversationID(); err != nil {
			c.logger.Warn("active conversation id not cleared", "error", err)
		}
	}
	return nil
}

// Activate makes a persisted conversation the active one.
func (c *Controller) Activate(id string) (*models.Conversation, error) {
	conv, err := c.conversations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, models.ErrNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSending {
		return nil, models.ErrBusy
	}
	c.active = conv
	c.status = StatusIdle
	if err := c.settings.PutActiveConversationID(id); err != nil {
		c.logger.Warn("active conversation id not saved", "error", err)
	}
	return cloneConversation(conv), nil
}

// runPipeline resolves settings, assembles the prompt, calls the remote
// service, and folds the outcome back into the conversation. Failures become
// a retryable assistant turn flagged error=true; nothing is thrown across
// the API boundary.
func (c *Controller) runPipeline(ctx context.Context, conv *models.Conversation) {
	snap := c.configSnapshot()
	eff := EffectiveSettings(snap)
	if requested := requestedModel(snap); requested != eff.Model {
		c.logger.Warn("requested model unavailable, substituted",
			"requested", requested, "using", eff.Model)
	}

	system := BuildSystemPrompt(eff.SystemPrompt, c.engine.Relevant(c.memoryLimit))

	c.mu.Lock()
	outbound := make([]completion.ChatMessage, 0, len(conv.Messages)+1)
	outbound = append(outbound, completion.ChatMessage{Role: string(models.RoleSystem), Content: system})
	var lastUser string
	for _, m := range conv.Messages {
		if m.Role == models.RoleSystem {
			continue
		}
		outbound = append(outbound, completion.ChatMessage{Role: string(m.Role), Content: m.Content})
		if m.Role == models.RoleUser {
			lastUser = m.Content
		}
	}
	c.mu.Unlock()

	text, err := c.client.Complete(ctx, snap.Catalog.WireModel(eff.Model), outbound, eff.Temperature)

	c.mu.Lock()
	now := time.Now().Unix()
	if err != nil {
		c.logger.Error("completion failed", "conversation", conv.ID, "error", err)
		conv.Messages = append(conv.Messages, models.Message{
			ID:        uuid.New().String(),
			Role:      models.RoleAssistant,
			Content:   fmt.Sprintf("Something went wrong: %v. Retry to try again.", err),
			Timestamp: now,
			Error:     true,
		})
		c.status = StatusError
	} else {
		conv.Messages = append(conv.Messages, models.Message{
			ID:        uuid.New().String(),
			Role:      models.RoleAssistant,
			Content:   text,
			Timestamp: now,
		})
		c.status = StatusIdle
	}
	conv.UpdatedAt = now
	c.persistLocked(conv)
	c.mu.Unlock()

	// Grow the memory store from the completed exchange. Error turns are
	// never extracted from.
	if err == nil && lastUser != "" {
		tags := profileTags(snap.ActiveProfileID)
		c.extractWG.Add(1)
		go func() {
			defer c.extractWG.Done()
			if n := c.engine.ExtractAndStore(lastUser, tags); n > 0 {
				c.logger.Info("memories extracted", "created", n)
			}
		}()
	}
}

// persistLocked writes the conversation, logging storage failures instead of
// propagating them: the in-memory state is kept so pending input is not lost.
func (c *Controller) persistLocked(conv *models.Conversation) {
	if err := c.conversations.Put(conv); err != nil {
		c.logger.Error("conversation not persisted, keeping in-memory state",
			"id", conv.ID, "error", err)
	}
}

// configSnapshot reads the configuration surface once per pipeline run.
func (c *Controller) configSnapshot() ConfigSnapshot {
	app := models.AppSettings{
		SystemPrompt: c.defaults.SystemPrompt,
		Model:        c.defaults.Model,
		Temperature:  c.defaults.Temperature,
	}
	if stored, err := c.settings.AppSettings(); err != nil {
		c.logger.Warn("app settings unavailable, using defaults", "error", err)
	} else if stored != nil {
		app = *stored
	}

	profiles, err := c.settings.Profiles()
	if err != nil {
		c.logger.Warn("profiles unavailable", "error", err)
	}
	custom, err := c.settings.CustomModels()
	if err != nil {
		c.logger.Warn("custom models unavailable", "error", err)
	}
	deleted, err := c.settings.DeletedModelIDs()
	if err != nil {
		c.logger.Warn("deleted model ids unavailable", "error", err)
	}
	activeID, err := c.settings.ActiveProfileID()
	if err != nil {
		c.logger.Warn("active profile unavailable", "error", err)
	}

	return ConfigSnapshot{
		App:             app,
		Profiles:        profiles,
		ActiveProfileID: activeID,
		Catalog: Catalog{
			BuiltIn: c.builtIn,
			Custom:  custom,
			Deleted: deleted,
			Default: app.Model,
		},
	}
}

// requestedModel is the pre-resolution model, used only for fallback logging.
func requestedModel(snap ConfigSnapshot) string {
	if snap.ActiveProfileID != "" && snap.ActiveProfileID != models.GlobalProfileID {
		for _, p := range snap.Profiles {
			if p.ID == snap.ActiveProfileID {
				return p.Model
			}
		}
	}
	return snap.App.Model
}

// profileTags encodes the profile association on extracted memories, except
// for the global and default sentinels.
func profileTags(profileID string) []string {
	if profileID == "" || profileID == models.GlobalProfileID || profileID == "default" {
		return nil
	}
	return []string{"profile:" + profileID}
}

func deriveTitle(content string) string {
	content = strings.TrimSpace(content)
	r := []rune(content)
	if len(r) <= titleMaxChars {
		return content
	}
	return string(r[:titleMaxChars]) + "…"
}

func cloneConversation(conv *models.Conversation) *models.Conversation {
	if conv == nil {
		return nil
	}
	cp := *conv
	cp.Messages = append([]models.Message(nil), conv.Messages...)
	return &cp
}
