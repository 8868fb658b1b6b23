package constants

// Session / context keys
const (
	SessionCookieName = "project_session"
	ContextKeyUserID  = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxSuggestedTasks caps how many tasks a single suggestion request may return.
const MaxSuggestedTasks = 20
