package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/askhatov/lossbot/internal/domain/event"
	"github.com/askhatov/lossbot/internal/domain/incident"
	"github.com/askhatov/lossbot/internal/session"
)

// Prompt builders are pure: given reference data and the draft they
// produce the text and option set for a state, independent of transport
// and of the transition logic.

const greeting = "Hi! I track sales-loss incidents.\nPick an action from the menu below."

func mainMenuPrompt(text string) event.Prompt {
	return event.Prompt{
		Text: text,
		Options: []event.Option{
			{Label: "New incident", Token: event.TokenMenuNew},
			{Label: "Close incident", Token: event.TokenMenuClose},
		},
	}
}

func backOption() event.Option {
	return event.Option{Label: "Back", Token: event.TokenBack}
}

func managerPrompt(managers []incident.Manager) event.Prompt {
	opts := make([]event.Option, 0, len(managers)+1)
	for _, m := range managers {
		opts = append(opts, event.Option{
			Label: m.Name,
			Token: event.JoinToken(event.PrefixManager, strconv.FormatInt(m.ID, 10)),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: "Choose a manager:", Options: opts}
}

func restaurantPrompt(restaurants []incident.Restaurant) event.Prompt {
	opts := make([]event.Option, 0, len(restaurants)+1)
	for _, r := range restaurants {
		opts = append(opts, event.Option{
			Label: r.Name,
			Token: event.JoinToken(event.PrefixRestaurant, strconv.FormatInt(r.ID, 10)),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: "Choose a restaurant:", Options: opts}
}

func dayPrompt(text string, days []time.Time) event.Prompt {
	opts := make([]event.Option, 0, len(days)+1)
	for i, d := range days {
		var label string
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Yesterday"
		default:
			label = d.Format("Mon 02.01")
		}
		opts = append(opts, event.Option{
			Label: label,
			Token: event.JoinToken(event.PrefixDay, d.Format(time.DateOnly)),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: text, Options: opts}
}

func hourPrompt(text string) event.Prompt {
	opts := make([]event.Option, 0, 25)
	for h := 0; h < 24; h++ {
		label := fmt.Sprintf("%02d", h)
		opts = append(opts, event.Option{
			Label: label,
			Token: event.JoinToken(event.PrefixHour, label),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: text, Options: opts}
}

func minutePrompt(text string) event.Prompt {
	opts := make([]event.Option, 0, 5)
	for _, m := range []int{0, 15, 30, 45} {
		label := fmt.Sprintf("%02d", m)
		opts = append(opts, event.Option{
			Label: label,
			Token: event.JoinToken(event.PrefixMinute, label),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: text, Options: opts}
}

func closeModePrompt() event.Prompt {
	return event.Prompt{
		Text: "When does the incident end?",
		Options: []event.Option{
			{Label: "Close now", Token: event.TokenEndNow},
			{Label: "Close later", Token: event.TokenEndLater},
			backOption(),
		},
	}
}

func reasonPrompt() event.Prompt {
	opts := make([]event.Option, 0, len(incident.Reasons)+1)
	for _, r := range incident.Reasons {
		opts = append(opts, event.Option{
			Label: r.Label(),
			Token: event.JoinToken(event.PrefixReason, r.String()),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: "Reason for the losses:", Options: opts}
}

func commentPrompt() event.Prompt {
	return event.Prompt{
		Text:    "Comment (type text, or \"—\" for none):",
		Options: []event.Option{backOption()},
	}
}

func amountPrompt() event.Prompt {
	opts := make([]event.Option, 0, len(amountPresets)+2)
	for _, a := range amountPresets {
		opts = append(opts, event.Option{
			Label: formatAmount(a),
			Token: event.JoinToken(event.PrefixAmount, strconv.FormatInt(a, 10)),
		})
	}
	opts = append(opts, event.Option{Label: "Other", Token: event.TokenAmountOther})
	opts = append(opts, backOption())
	return event.Prompt{Text: "Amount lost, KZT:", Options: opts}
}

func customAmountPrompt() event.Prompt {
	return event.Prompt{
		Text:    "Enter the amount as a number:",
		Options: []event.Option{backOption()},
	}
}

func confirmOptions() []event.Option {
	return []event.Option{
		{Label: "Yes, save", Token: event.TokenConfirmYes},
		{Label: "Cancel", Token: event.TokenConfirmNo},
		backOption(),
	}
}

// confirmPrompt renders the full draft for a last look before commit.
func confirmPrompt(d session.Draft, loc *time.Location) event.Prompt {
	start := combine(*d.Day, *d.StartHour, *d.StartMinute, loc)

	endText := incident.CommentPlaceholder
	durText := incident.CommentPlaceholder
	if d.CloseNow != nil && *d.CloseNow {
		end := rollForward(start, combine(*d.Day, *d.EndHour, *d.EndMinute, loc))
		endText = end.Format("02.01 15:04")
		durText = formatDuration(durationMinutes(start, end))
	}

	var b strings.Builder
	b.WriteString("Confirm the incident:\n")
	fmt.Fprintf(&b, "Manager: %s\n", d.ManagerName)
	fmt.Fprintf(&b, "Restaurant: %s\n", d.RestaurantName)
	fmt.Fprintf(&b, "Start: %s\n", start.Format("02.01 15:04"))
	fmt.Fprintf(&b, "End: %s\n", endText)
	fmt.Fprintf(&b, "Duration: %s\n", durText)
	fmt.Fprintf(&b, "Reason: %s\n", d.Reason.Label())
	fmt.Fprintf(&b, "Comment: %s\n", *d.Comment)
	fmt.Fprintf(&b, "Amount: %s KZT", formatAmount(*d.Amount))

	return event.Prompt{Text: b.String(), Options: confirmOptions()}
}

func openIncidentPrompt(opens []incident.Summary) event.Prompt {
	opts := make([]event.Option, 0, len(opens)+1)
	for _, o := range opens {
		opts = append(opts, event.Option{
			Label: fmt.Sprintf("#%d • %s • %s • %s", o.ID, o.RestaurantName, o.Reason.Label(), formatAmount(o.Amount)),
			Token: event.JoinToken(event.PrefixPick, strconv.FormatInt(o.ID, 10)),
		})
	}
	opts = append(opts, backOption())
	return event.Prompt{Text: "Choose an open incident:", Options: opts}
}

// closeConfirmPrompt asks to confirm closing one incident at a concrete time.
func closeConfirmPrompt(id int64, end time.Time) event.Prompt {
	return event.Prompt{
		Text:    fmt.Sprintf("Close incident #%d at %s?", id, end.Format("02.01 15:04")),
		Options: confirmOptions(),
	}
}
