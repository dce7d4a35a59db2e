package middleware

// ContextKey is a private key type for request context values, so other
// packages cannot collide with ours.
type ContextKey string

const (
	// UserIDCtxKey carries the authenticated account's id.
	UserIDCtxKey = ContextKey("user_id")

	// UsernameCtxKey carries the authenticated account's username, used
	// for denormalized fields like comment authorship.
	UsernameCtxKey = ContextKey("username")

	// UserRoleCtxKey carries the authenticated account's role.
	UserRoleCtxKey = ContextKey("user_role")
)
