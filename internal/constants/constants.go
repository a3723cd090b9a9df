package constants

import "time"

const (
	// SessionCookieName is the name of the HTTP-only session cookie.
	SessionCookieName = "quest_session"

	// ContextKeyUsername is used both as the session key and the gin context key
	// for the authenticated username.
	ContextKeyUsername = "username"

	// SessionKeyExpiresAt holds the absolute expiry (unix seconds) of a session.
	SessionKeyExpiresAt = "expires_at"

	// SessionTTL is the absolute lifetime of a session. Activity does not extend it.
	SessionTTL = 30 * time.Minute
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 16

	// PasswordSymbols lists the characters accepted as the required password symbol.
	PasswordSymbols = "!@#$%^&*()_+.<>-"
)

const (
	MaxQuestTitleLength = 30

	// MaxSuggestedQuests caps how many drafts a single suggestion request may return.
	MaxSuggestedQuests = 10
)
