package video

import "errors"

// storage-level sentinels, mapped once from the object store's responses
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// domain sentinels, mapped to HTTP statuses by the handlers
var (
	ErrNotFound = errors.New("video not found")
	// ErrForbiddenRole: the principal's role groups never permit the action.
	ErrForbiddenRole = errors.New("forbidden: insufficient role")
	// ErrForbiddenTenant: the role would permit it, but the resource belongs
	// to another tenant.
	ErrForbiddenTenant = errors.New("forbidden: wrong tenant")
	// ErrForbiddenMissingAttribute: the principal lacks the organization or
	// shop attribute the action is scoped by.
	ErrForbiddenMissingAttribute = errors.New("forbidden: missing attribute")
	// ErrGracePeriodExpired: delete attempted after the grace window closed.
	ErrGracePeriodExpired = errors.New("deletion grace period expired")
)
