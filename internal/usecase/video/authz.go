package video

import "github.com/tagreel/videos-ms-go/internal/auth"

// denyToErr converts a policy denial reason into the matching sentinel.
func denyToErr(r auth.Reason) error {
	switch r {
	case auth.ReasonWrongTenant:
		return ErrForbiddenTenant
	case auth.ReasonMissingAttribute:
		return ErrForbiddenMissingAttribute
	default:
		return ErrForbiddenRole
	}
}
