package auth

// Known OAuth scopes used by the streak service.
const (
	ScopeStreaksWrite = "streaks:write"
	ScopeStreaksRead  = "streaks:read"
)
