package giveaway

// Field enumerates the configurable draft fields. The closed enumeration
// replaces dispatch on free-text menu labels so every switch over fields can
// be checked for exhaustiveness.
type Field int

const (
	FieldDuration Field = iota
	FieldChannel
	FieldWinnerCount
	FieldReaction
	FieldPrize
	FieldForcedWinner
	FieldRequiredRole
	FieldRemoveForcedWinner
	FieldRemoveRequiredRole
)

// MenuFields is the order fields appear in the configuration menu.
var MenuFields = []Field{
	FieldDuration,
	FieldChannel,
	FieldWinnerCount,
	FieldReaction,
	FieldPrize,
	FieldForcedWinner,
	FieldRequiredRole,
	FieldRemoveForcedWinner,
	FieldRemoveRequiredRole,
}

var fieldKeys = map[Field]string{
	FieldDuration:           "duration",
	FieldChannel:            "channel",
	FieldWinnerCount:        "winner-count",
	FieldReaction:           "reaction",
	FieldPrize:              "prize",
	FieldForcedWinner:       "forced-winner",
	FieldRequiredRole:       "required-role",
	FieldRemoveForcedWinner: "remove-forced-winner",
	FieldRemoveRequiredRole: "remove-required-role",
}

var fieldLabels = map[Field]string{
	FieldDuration:           "Duration",
	FieldChannel:            "Channel",
	FieldWinnerCount:        "Winner count",
	FieldReaction:           "Reaction",
	FieldPrize:              "Prize",
	FieldForcedWinner:       "Forced winner",
	FieldRequiredRole:       "Required role",
	FieldRemoveForcedWinner: "Remove forced winner",
	FieldRemoveRequiredRole: "Remove required role",
}

var fieldPrompts = map[Field]string{
	FieldDuration:     "Reply with how long the giveaway should run, e.g. `30m`, `2h` or `1d`.",
	FieldChannel:      "Reply with the channel to announce in: a #mention, an id or a name.",
	FieldWinnerCount:  "Reply with how many winners to draw (a positive number).",
	FieldReaction:     "Reply with the emoji participants should react with.",
	FieldPrize:        "Reply with the prize text.",
	FieldForcedWinner: "Reply with the member who should always win: a @mention or an id.",
	FieldRequiredRole: "Reply with the role participants must hold: a @mention, an id or a name.",
}

// Key returns the stable identifier used in select menu values.
func (f Field) Key() string { return fieldKeys[f] }

// Label returns the human-readable field name.
func (f Field) Label() string { return fieldLabels[f] }

// Prompt returns the re-prompt text shown when the field awaits a value.
func (f Field) Prompt() string { return fieldPrompts[f] }

// Immediate reports whether selecting the field applies at once instead of
// awaiting a value message. The remove variants clear unconditionally.
func (f Field) Immediate() bool {
	return f == FieldRemoveForcedWinner || f == FieldRemoveRequiredRole
}

// FieldByKey maps a select menu value back to its field.
func FieldByKey(key string) (Field, bool) {
	for f, k := range fieldKeys {
		if k == key {
			return f, true
		}
	}
	return 0, false
}
