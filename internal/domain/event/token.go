package event

import "strings"

// Token prefixes and fixed tokens of the engine's selection protocol.
// Tokens are opaque to the transport; only the engine mints and parses them.
const (
	TokenMenuNew   = "menu:new"
	TokenMenuClose = "menu:close"
	TokenMenuMain  = "menu:main"

	TokenBack        = "back"
	TokenConfirmYes  = "confirm:yes"
	TokenConfirmNo   = "confirm:no"
	TokenEndNow      = "end:now"
	TokenEndLater    = "end:later"
	TokenAmountOther = "amount:other"

	PrefixManager    = "mgr"
	PrefixRestaurant = "rest"
	PrefixDay        = "day"
	PrefixHour       = "hh"
	PrefixMinute     = "min"
	PrefixReason     = "reason"
	PrefixAmount     = "amount"
	PrefixPick       = "pick"
)

// JoinToken builds a "prefix:arg" selection token.
func JoinToken(prefix, arg string) string {
	return prefix + ":" + arg
}

// SplitToken splits a selection token into prefix and argument. The ok
// result is false when the token carries no argument.
func SplitToken(token string) (prefix, arg string, ok bool) {
	prefix, arg, ok = strings.Cut(token, ":")
	return prefix, arg, ok
}
