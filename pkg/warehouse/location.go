package warehouse

import "strings"

// Location tokens are slot names with the first space replaced by an
// underscore, so the spoken form "loading dock" is stored as
// "loading_dock". Only the first space is rewritten; this matches the
// behavior the connected robots were programmed against, so multi-word
// slots with several spaces stay partially normalized on purpose.

// Token converts a spoken location name to its stored token form.
func Token(spoken string) string {
	return strings.Replace(spoken, " ", "_", 1)
}

// Spoken converts a stored location token back to its spoken form.
func Spoken(token string) string {
	return strings.Replace(token, "_", " ", 1)
}
