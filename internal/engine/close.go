package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/askhatov/lossbot/internal/domain/event"
	"github.com/askhatov/lossbot/internal/domain/flow"
	"github.com/askhatov/lossbot/internal/session"
	"go.uber.org/zap"
)

// handleClose advances the close wizard by one input.
func (e *Engine) handleClose(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if in.IsSelection() && in.Token == event.TokenBack {
		return e.closeBack(ctx, sess)
	}

	switch sess.CloseState {
	case flow.ClosePickingIncident:
		return e.closePickIncident(ctx, sess, in)
	case flow.CloseChoosingEndDay:
		return e.closePickDay(ctx, sess, in)
	case flow.CloseChoosingEndHour:
		return e.closePickHour(ctx, sess, in)
	case flow.CloseChoosingEndMinute:
		return e.closePickMinute(ctx, sess, in)
	case flow.CloseConfirming:
		return e.closeConfirm(ctx, sess, in)
	}

	e.sessions.Delete(sess.ConversationID)
	return mainMenuPrompt("Pick an action from the menu below."), nil
}

func (e *Engine) closeBack(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	prev, ok := sess.CloseState.Prev()
	if !ok {
		e.sessions.Delete(sess.ConversationID)
		return mainMenuPrompt("Pick an action from the menu below."), nil
	}
	sess.CloseState = prev
	return e.renderClose(ctx, sess)
}

// renderClose produces the prompt for the wizard's current step. The open
// list is always re-fetched: an incident closed by another session in the
// meantime must not be offered.
func (e *Engine) renderClose(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	switch sess.CloseState {
	case flow.ClosePickingIncident:
		opens, err := e.store.ListOpen(ctx, e.openLimit)
		if err != nil {
			e.sessions.Delete(sess.ConversationID)
			return e.failurePrompt("load open incidents", err)
		}
		if len(opens) == 0 {
			e.sessions.Delete(sess.ConversationID)
			return mainMenuPrompt("There are no open incidents."), nil
		}
		return openIncidentPrompt(opens), nil
	case flow.CloseChoosingEndDay:
		return dayPrompt("End day:", dayWindow(e.now(), e.loc)), nil
	case flow.CloseChoosingEndHour:
		return hourPrompt("End hour (0–23):"), nil
	case flow.CloseChoosingEndMinute:
		return minutePrompt("End minutes:"), nil
	case flow.CloseConfirming:
		return closeConfirmPrompt(*sess.Draft.IncidentID, e.closeEndTime(sess.Draft)), nil
	}
	return mainMenuPrompt("Pick an action from the menu below."), nil
}

func (e *Engine) closePickIncident(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	opens, err := e.store.ListOpen(ctx, e.openLimit)
	if err != nil {
		e.sessions.Delete(sess.ConversationID)
		return e.failurePrompt("load open incidents", err)
	}

	id, ok := tokenID(in, event.PrefixPick)
	if ok {
		for _, o := range opens {
			if o.ID == id {
				sess.Draft.IncidentID = &o.ID
				sess.Draft.IncidentStart = o.StartTime.In(e.loc)
				sess.CloseState = flow.CloseChoosingEndDay
				return dayPrompt("End day:", dayWindow(e.now(), e.loc)), nil
			}
		}
	}

	// Unknown or stale pick: offer the freshly fetched list again.
	if len(opens) == 0 {
		e.sessions.Delete(sess.ConversationID)
		return mainMenuPrompt("There are no open incidents."), nil
	}
	return openIncidentPrompt(opens), nil
}

func (e *Engine) closePickDay(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	day, ok := e.parseDayToken(in)
	if !ok {
		return dayPrompt("End day:", dayWindow(e.now(), e.loc)), nil
	}
	sess.Draft.Day = &day
	sess.CloseState = flow.CloseChoosingEndHour
	return hourPrompt("End hour (0–23):"), nil
}

func (e *Engine) closePickHour(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	h, ok := parseHourToken(in)
	if !ok {
		return hourPrompt("End hour (0–23):"), nil
	}
	sess.Draft.EndHour = &h
	sess.CloseState = flow.CloseChoosingEndMinute
	return minutePrompt("End minutes:"), nil
}

func (e *Engine) closePickMinute(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	m, ok := parseMinuteToken(in)
	if !ok {
		return minutePrompt("End minutes:"), nil
	}
	sess.Draft.EndMinute = &m
	sess.CloseState = flow.CloseConfirming
	return closeConfirmPrompt(*sess.Draft.IncidentID, e.closeEndTime(sess.Draft)), nil
}

func (e *Engine) closeConfirm(ctx context.Context, sess *session.Session, in event.Inbound) (event.Prompt, error) {
	if !in.IsSelection() {
		return closeConfirmPrompt(*sess.Draft.IncidentID, e.closeEndTime(sess.Draft)), nil
	}
	switch in.Token {
	case event.TokenConfirmNo:
		e.sessions.Delete(sess.ConversationID)
		return mainMenuPrompt("Cancelled."), nil
	case event.TokenConfirmYes:
		return e.commitClose(ctx, sess)
	}
	return closeConfirmPrompt(*sess.Draft.IncidentID, e.closeEndTime(sess.Draft)), nil
}

// commitClose writes the end timestamp through the store's conditional
// update. A false result means another session closed the incident first;
// that is reported distinctly from a store failure.
func (e *Engine) commitClose(ctx context.Context, sess *session.Session) (event.Prompt, error) {
	d := sess.Draft
	id := *d.IncidentID
	e.sessions.Delete(sess.ConversationID)

	end := e.closeEndTime(d)
	minutes := durationMinutes(d.IncidentStart, end)

	closed, err := e.store.Close(ctx, id, end, minutes)
	if err != nil {
		return e.failurePrompt("close incident", err)
	}
	if !closed {
		e.logger.Warn("close lost the race", zap.Int64("incident_id", id))
		return mainMenuPrompt(fmt.Sprintf("Incident #%d is already closed.", id)),
			fmt.Errorf("%w: incident %d", ErrAlreadyClosed, id)
	}

	e.logger.Info("incident closed",
		zap.Int64("incident_id", id),
		zap.Int64("duration_minutes", minutes))
	return mainMenuPrompt(fmt.Sprintf("Incident #%d closed.", id)), nil
}

// closeEndTime combines the drafted end day/hour/minute and rolls the
// result forward a day when it precedes the incident's start.
func (e *Engine) closeEndTime(d session.Draft) time.Time {
	end := combine(*d.Day, *d.EndHour, *d.EndMinute, e.loc)
	return rollForward(d.IncidentStart, end)
}
