package server

const (
	// Not found (2xxx)
	ErrCodePayloadNotFound = 2001
	ErrCodeRouteNotFound   = 2002

	// Internal/system (4xxx)
	ErrCodePayloadRead = 4002
)
