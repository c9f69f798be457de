package domain

type ctxKey int

const (
	// RequesterIDCtxKey carries the authenticated PersonID.
	RequesterIDCtxKey ctxKey = iota
	// RequesterRoleCtxKey carries the authenticated Role.
	RequesterRoleCtxKey
)
