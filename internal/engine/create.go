package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/askhatov/lossbot/internal/domain/event"
	"github.com/askhatov/lossbot/internal/domain/flow"
	"github.com/askhatov/lossbot/internal/domain/incident"
	"github.com/askhatov/lossbot/internal/session"
	"go.uber.org/zap"
)

// handleCreate advances the create wizard by one input. Every branch
// either fully applies (draft updated, state advanced, next prompt) or
// fully rejects (nothing changes, same prompt again).
func (e *Engine) handleCreate(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if in.IsSelection() && in.Token == event.TokenBack {
		return e.createBack(ctx, sess)
	}

	switch sess.CreateState {
	case flow.CreateChoosingManager:
		return e.createPickManager(ctx, sess, in)
	case flow.CreateChoosingRestaurant:
		return e.createPickRestaurant(ctx, sess, in)
	case flow.CreateChoosingDay:
		return e.createPickDay(ctx, sess, in)
	case flow.CreateChoosingStartHour:
		return e.createPickHour(ctx, sess, in, &sess.Draft.StartHour, flow.CreateChoosingStartMinute, minutePrompt("Start minutes:"))
	case flow.CreateChoosingStartMinute:
		return e.createPickMinute(ctx, sess, in, &sess.Draft.StartMinute, flow.CreateChoosingCloseMode, closeModePrompt())
	case flow.CreateChoosingCloseMode:
		return e.createPickCloseMode(ctx, sess, in)
	case flow.CreateChoosingEndHour:
		return e.createPickHour(ctx, sess, in, &sess.Draft.EndHour, flow.CreateChoosingEndMinute, minutePrompt("End minutes:"))
	case flow.CreateChoosingEndMinute:
		return e.createPickMinute(ctx, sess, in, &sess.Draft.EndMinute, flow.CreateChoosingReason, reasonPrompt())
	case flow.CreateChoosingReason:
		return e.createPickReason(ctx, sess, in)
	case flow.CreateEnteringComment:
		return e.createEnterComment(ctx, sess, in)
	case flow.CreateChoosingAmount:
		return e.createPickAmount(ctx, sess, in)
	case flow.CreateConfirming:
		return e.createConfirm(ctx, sess, in)
	}

	// Unknown state means a corrupted session; start over.
	e.sessions.Delete(sess.ConversationID)
	return mainMenuPrompt("Pick an action from the menu below."), nil
}

// createBack lands on the immediately preceding step and re-renders its
// prompt from the stored draft. Backing out of the first step leaves the
// wizard entirely.
func (e *Engine) createBack(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	closeNow := sess.Draft.CloseNow != nil && *sess.Draft.CloseNow
	prev, ok := sess.CreateState.Prev(closeNow)
	if !ok {
		e.sessions.Delete(sess.ConversationID)
		return mainMenuPrompt("Pick an action from the menu below."), nil
	}
	sess.CreateState = prev
	return e.renderCreate(ctx, sess)
}

// renderCreate produces the prompt for the wizard's current step. Only
// the manager and restaurant lists are fetched; the restaurant list
// depends on the drafted manager and so cannot be reused across backs.
func (e *Engine) renderCreate(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	switch sess.CreateState {
	case flow.CreateChoosingManager:
		managers, err := e.refs.ListManagers(ctx)
		if err != nil {
			e.sessions.Delete(sess.ConversationID)
			return e.failurePrompt("load managers", err)
		}
		return managerPrompt(managers), nil
	case flow.CreateChoosingRestaurant:
		restaurants, err := e.refs.ListRestaurants(ctx, *sess.Draft.ManagerID)
		if err != nil {
			e.sessions.Delete(sess.ConversationID)
			return e.failurePrompt("load restaurants", err)
		}
		return restaurantPrompt(restaurants), nil
	case flow.CreateChoosingDay:
		return dayPrompt("Incident day:", dayWindow(e.now(), e.loc)), nil
	case flow.CreateChoosingStartHour:
		return hourPrompt("Start hour (0–23):"), nil
	case flow.CreateChoosingStartMinute:
		return minutePrompt("Start minutes:"), nil
	case flow.CreateChoosingCloseMode:
		return closeModePrompt(), nil
	case flow.CreateChoosingEndHour:
		return hourPrompt("End hour (0–23):"), nil
	case flow.CreateChoosingEndMinute:
		return minutePrompt("End minutes:"), nil
	case flow.CreateChoosingReason:
		return reasonPrompt(), nil
	case flow.CreateEnteringComment:
		return commentPrompt(), nil
	case flow.CreateChoosingAmount:
		return amountPrompt(), nil
	case flow.CreateConfirming:
		return confirmPrompt(sess.Draft, e.loc), nil
	}
	return mainMenuPrompt("Pick an action from the menu below."), nil
}

func (e *Engine) createPickManager(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	managers, err := e.refs.ListManagers(ctx)
	if err != nil {
		e.sessions.Delete(sess.ConversationID)
		return e.failurePrompt("load managers", err)
	}

	id, ok := tokenID(in, event.PrefixManager)
	if !ok {
		return managerPrompt(managers), nil
	}
	var picked *incident.Manager
	for i := range managers {
		if managers[i].ID == id {
			picked = &managers[i]
			break
		}
	}
	if picked == nil {
		return managerPrompt(managers), nil
	}

	restaurants, err := e.refs.ListRestaurants(ctx, picked.ID)
	if err != nil {
		e.sessions.Delete(sess.ConversationID)
		return e.failurePrompt("load restaurants", err)
	}
	if len(restaurants) == 0 {
		prompt := managerPrompt(managers)
		prompt.Text = "This manager has no restaurants attached. Choose another manager:"
		return prompt, nil
	}

	sess.Draft.ManagerID = &picked.ID
	sess.Draft.ManagerName = picked.Name
	sess.CreateState = flow.CreateChoosingRestaurant
	return restaurantPrompt(restaurants), nil
}

func (e *Engine) createPickRestaurant(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	restaurants, err := e.refs.ListRestaurants(ctx, *sess.Draft.ManagerID)
	if err != nil {
		e.sessions.Delete(sess.ConversationID)
		return e.failurePrompt("load restaurants", err)
	}

	id, ok := tokenID(in, event.PrefixRestaurant)
	if !ok {
		return restaurantPrompt(restaurants), nil
	}
	for i := range restaurants {
		if restaurants[i].ID == id {
			sess.Draft.RestaurantID = &restaurants[i].ID
			sess.Draft.RestaurantName = restaurants[i].Name
			sess.CreateState = flow.CreateChoosingDay
			return dayPrompt("Incident day:", dayWindow(e.now(), e.loc)), nil
		}
	}
	return restaurantPrompt(restaurants), nil
}

func (e *Engine) createPickDay(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	day, ok := e.parseDayToken(in)
	if !ok {
		return dayPrompt("Incident day:", dayWindow(e.now(), e.loc)), nil
	}
	sess.Draft.Day = &day
	sess.CreateState = flow.CreateChoosingStartHour
	return hourPrompt("Start hour (0–23):"), nil
}

func (e *Engine) createPickHour(ctx context.Context, sess *session.Session, in event.Inbound, field **int, next flow.CreateState, nextPrompt event.Prompt) (event.Prompt, error) {
	h, ok := parseHourToken(in)
	if !ok {
		return e.renderCreate(ctx, sess)
	}
	*field = &h
	sess.CreateState = next
	return nextPrompt, nil
}

func (e *Engine) createPickMinute(ctx context.Context, sess *session.Session, in event.Inbound, field **int, next flow.CreateState, nextPrompt event.Prompt) (event.Prompt, error) {
	m, ok := parseMinuteToken(in)
	if !ok {
		return e.renderCreate(ctx, sess)
	}
	*field = &m
	sess.CreateState = next
	return nextPrompt, nil
}

func (e *Engine) createPickCloseMode(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if !in.IsSelection() {
		return closeModePrompt(), nil
	}
	switch in.Token {
	case event.TokenEndNow:
		closeNow := true
		sess.Draft.CloseNow = &closeNow
		sess.CreateState = flow.CreateChoosingEndHour
		return hourPrompt("End hour (0–23):"), nil
	case event.TokenEndLater:
		closeNow := false
		sess.Draft.CloseNow = &closeNow
		sess.Draft.EndHour = nil
		sess.Draft.EndMinute = nil
		sess.CreateState = flow.CreateChoosingReason
		return reasonPrompt(), nil
	}
	return closeModePrompt(), nil
}

func (e *Engine) createPickReason(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if !in.IsSelection() {
		return reasonPrompt(), nil
	}
	prefix, arg, ok := event.SplitToken(in.Token)
	if !ok || prefix != event.PrefixReason {
		return reasonPrompt(), nil
	}
	reason := incident.Reason(arg)
	if !reason.IsValid() {
		return reasonPrompt(), nil
	}
	sess.Draft.Reason = reason
	sess.CreateState = flow.CreateEnteringComment
	return commentPrompt(), nil
}

func (e *Engine) createEnterComment(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if !in.IsText() {
		return commentPrompt(), nil
	}
	comment := incident.NormalizeComment(in.Text)
	sess.Draft.Comment = &comment
	sess.CreateState = flow.CreateChoosingAmount
	return amountPrompt(), nil
}

func (e *Engine) createPickAmount(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	var raw string
	switch {
	case in.IsSelection() && in.Token == event.TokenAmountOther:
		// Stay on this step and wait for a typed amount.
		return customAmountPrompt(), nil
	case in.IsSelection():
		prefix, arg, ok := event.SplitToken(in.Token)
		if !ok || prefix != event.PrefixAmount {
			return amountPrompt(), nil
		}
		raw = arg
	default:
		raw = in.Text
	}

	amount, err := parseAmount(raw)
	if err != nil {
		prompt := amountPrompt()
		prompt.Text = "The amount must be a positive number. " + prompt.Text
		return prompt, nil
	}
	sess.Draft.Amount = &amount
	sess.CreateState = flow.CreateConfirming
	return confirmPrompt(sess.Draft, e.loc), nil
}

func (e *Engine) createConfirm(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if !in.IsSelection() {
		return confirmPrompt(sess.Draft, e.loc), nil
	}
	switch in.Token {
	case event.TokenConfirmNo:
		e.sessions.Delete(sess.ConversationID)
		return mainMenuPrompt("Cancelled."), nil
	case event.TokenConfirmYes:
		return e.commitCreate(ctx, sess)
	}
	return confirmPrompt(sess.Draft, e.loc), nil
}

// commitCreate persists the draft as an incident row. The session is gone
// by the time the store answers, success or failure: a failed save must
// not leave a half-built wizard behind.
func (e *Engine) commitCreate(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	d := sess.Draft
	e.sessions.Delete(sess.ConversationID)

	start := combine(*d.Day, *d.StartHour, *d.StartMinute, e.loc)

	inc := &incident.Incident{
		ManagerID:    *d.ManagerID,
		RestaurantID: *d.RestaurantID,
		StartTime:    start,
		Reason:       d.Reason,
		Comment:      commentOrPlaceholder(d.Comment),
		Amount:       *d.Amount,
		Status:       incident.StatusOpen,
	}
	if d.CloseNow != nil && *d.CloseNow {
		end := rollForward(start, combine(*d.Day, *d.EndHour, *d.EndMinute, e.loc))
		minutes := durationMinutes(start, end)
		inc.EndTime = &end
		inc.DurationMinutes = &minutes
		inc.Status = incident.StatusClosed
	}

	id, err := e.store.Insert(ctx, inc)
	if err != nil {
		return e.failurePrompt("insert incident", err)
	}

	e.logger.Info("incident created",
		zap.Int64("incident_id", id),
		zap.String("status", inc.Status.String()),
		zap.Int64("amount", inc.Amount))

	if inc.Status == incident.StatusOpen {
		return mainMenuPrompt(fmt.Sprintf("Incident #%d saved as OPEN.", id)), nil
	}
	return mainMenuPrompt(fmt.Sprintf("Incident #%d saved and CLOSED.", id)), nil
}

func commentOrPlaceholder(c *string) string {
	if c == nil || *c == "" {
		return incident.CommentPlaceholder
	}
	return *c
}

// tokenID extracts the numeric argument of a "prefix:id" selection.
func tokenID(in event.Inbound, wantPrefix string) (int64, bool) {
	if !in.IsSelection() {
		return 0, false
	}
	prefix, arg, ok := event.SplitToken(in.Token)
	if !ok || prefix != wantPrefix {
		return 0, false
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseDayToken accepts a "day:YYYY-MM-DD" selection within the picker
// window and returns the day at midnight in the engine's location.
func (e *Engine) parseDayToken(in event.Inbound) (time.Time, bool) {
	if !in.IsSelection() {
		return time.Time{}, false
	}
	prefix, arg, ok := event.SplitToken(in.Token)
	if !ok || prefix != event.PrefixDay {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(time.DateOnly, arg, e.loc)
	if err != nil {
		return time.Time{}, false
	}
	if !validDay(parsed, e.now(), e.loc) {
		return time.Time{}, false
	}
	return parsed, true
}

func parseHourToken(in event.Inbound) (int, bool) {
	if !in.IsSelection() {
		return 0, false
	}
	prefix, arg, ok := event.SplitToken(in.Token)
	if !ok || prefix != event.PrefixHour {
		return 0, false
	}
	h, err := strconv.Atoi(arg)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func parseMinuteToken(in event.Inbound) (int, bool) {
	if !in.IsSelection() {
		return 0, false
	}
	prefix, arg, ok := event.SplitToken(in.Token)
	if !ok || prefix != event.PrefixMinute {
		return 0, false
	}
	m, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	switch m {
	case 0, 15, 30, 45:
		return m, true
	}
	return 0, false
}
