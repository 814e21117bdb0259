package port

import "errors"

// ErrPermanent marks a failure that retrying cannot fix (missing or revoked
// credential, rejected upload, unknown key). Adapters wrap their
// non-retryable failures with it; the upload worker fails the job
// immediately instead of letting the queue retry.
var ErrPermanent = errors.New("permanent failure")

// ErrAlreadyExists signals a conditional insert lost to an existing row
// with the same ID.
var ErrAlreadyExists = errors.New("row already exists")
