package utils

// ContextKey is the type for request-context values set by the JWT
// middleware (userId, email, name, expiresAt).
type ContextKey string
