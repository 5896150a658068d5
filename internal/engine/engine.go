package engine

import (
	"context"
	"time"

	"github.com/askhatov/lossbot/internal/domain/event"
	"github.com/askhatov/lossbot/internal/domain/flow"
	"github.com/askhatov/lossbot/internal/session"
	"go.uber.org/zap"
)

// Engine drives one incident wizard per conversation. It owns no I/O to
// the user: every inbound event yields exactly one outbound prompt, which
// the transport renders however it likes.
type Engine struct {
	refs     ReferenceDirectory
	store    IncidentStore
	sessions *session.Store
	loc      *time.Location
	logger   *zap.Logger

	openLimit int
	now       func() time.Time
}

// Config holds engine tuning knobs.
type Config struct {
	// Location is the time zone incidents are reported in.
	Location *time.Location
	// OpenIncidentLimit caps the open-incident picker list.
	OpenIncidentLimit int
}

// NewEngine creates a workflow engine.
func NewEngine(refs ReferenceDirectory, store IncidentStore, sessions *session.Store, cfg Config, logger *zap.Logger) *Engine {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	limit := cfg.OpenIncidentLimit
	if limit <= 0 {
		limit = 10
	}
	return &Engine{
		refs:      refs,
		store:     store,
		sessions:  sessions,
		loc:       loc,
		logger:    logger,
		openLimit: limit,
		now:       time.Now,
	}
}

// HandleEvent processes one user input for a conversation and returns the
// prompt to deliver. Recoverable problems (invalid input, stale picks)
// come back as a re-prompt with a nil error; persistence failures return
// both a user-facing prompt and a wrapped error for the transport to log.
func (e *Engine) HandleEvent(ctx context.Context, conversationID string, in event.Inbound) (event.Prompt, error) {
	// Global commands work from any state and replace whatever wizard
	// is running.
	if in.IsText() && in.Text == "/start" {
		e.sessions.Delete(conversationID)
		return mainMenuPrompt(greeting), nil
	}
	if in.IsSelection() {
		switch in.Token {
		case event.TokenMenuMain:
			e.sessions.Delete(conversationID)
			return mainMenuPrompt(greeting), nil
		case event.TokenMenuNew:
			return e.startCreate(ctx, conversationID)
		case event.TokenMenuClose:
			return e.startClose(ctx, conversationID)
		}
	}

	sess, ok := e.sessions.Get(conversationID)
	if !ok {
		return mainMenuPrompt("Pick an action from the menu below."), nil
	}

	var (
		prompt event.Prompt
		err    error
	)
	switch sess.Flow {
	case flow.KindCreate:
		prompt, err = e.handleCreate(ctx, sess, in)
	case flow.KindClose:
		prompt, err = e.handleClose(ctx, sess, in)
	default:
		e.sessions.Delete(conversationID)
		return mainMenuPrompt("Pick an action from the menu below."), nil
	}

	// The session may have been torn down by a terminal transition.
	if live, still := e.sessions.Get(conversationID); still && live == sess {
		e.sessions.Touch(sess)
	}
	return prompt, err
}

// startCreate opens a fresh create-flow session, discarding any running
// wizard for the conversation.
func (e *Engine) startCreate(ctx context.Context, conversationID string) (event.Prompt, error) {
	managers, err := e.refs.ListManagers(ctx)
	if err != nil {
		e.sessions.Delete(conversationID)
		return e.failurePrompt("load managers", err)
	}
	if len(managers) == 0 {
		e.sessions.Delete(conversationID)
		return mainMenuPrompt("No managers are configured yet."), nil
	}

	sess := e.sessions.Start(conversationID, flow.KindCreate)
	sess.CreateState = flow.CreateChoosingManager

	e.logger.Info("create flow started", zap.String("conversation_id", conversationID))
	return managerPrompt(managers), nil
}

// startClose opens a fresh close-flow session. The open-incident list is
// fetched on every entry, never cached.
func (e *Engine) startClose(ctx context.Context, conversationID string) (event.Prompt, error) {
	opens, err := e.store.ListOpen(ctx, e.openLimit)
	if err != nil {
		e.sessions.Delete(conversationID)
		return e.failurePrompt("load open incidents", err)
	}
	if len(opens) == 0 {
		e.sessions.Delete(conversationID)
		return mainMenuPrompt("There are no open incidents."), nil
	}

	sess := e.sessions.Start(conversationID, flow.KindClose)
	sess.CloseState = flow.ClosePickingIncident

	e.logger.Info("close flow started", zap.String("conversation_id", conversationID))
	return openIncidentPrompt(opens), nil
}

// failurePrompt reports a store problem to the user and propagates the
// wrapped error to the caller.
func (e *Engine) failurePrompt(op string, err error) (event.Prompt, error) {
	e.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return mainMenuPrompt("Saving is unavailable right now, please try again later."),
		wrapPersistence(op, err)
}
