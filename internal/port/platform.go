package port

import (
	"context"
	"io"
)

// CredentialDecrypter opens a tenant's envelope-encrypted platform
// credential. Input is the opaque stored blob; output is the raw refresh
// token. Non-retryable failures (key not found, access denied, corrupt
// ciphertext) are wrapped with ErrPermanent.
type CredentialDecrypter interface {
	Decrypt(ctx context.Context, blob []byte) (string, error)
}

// PlatformUploadInput describes one streaming upload to the external video
// platform. Body is consumed exactly once and never buffered whole.
type PlatformUploadInput struct {
	RefreshToken string
	Title        string
	Description  string
	Body         io.Reader
	SizeBytes    int64
}

// PlatformVideo is the external platform's reference for an uploaded video.
type PlatformVideo struct {
	ExternalID  string
	ExternalURL string
	Visibility  string
}

// VideoPlatform uploads videos to the external hosting platform on behalf
// of a shop. Rejections for non-retryable reasons are wrapped with
// ErrPermanent.
type VideoPlatform interface {
	Upload(ctx context.Context, in PlatformUploadInput) (PlatformVideo, error)
}

// Notifier sends transactional notifications about job outcomes.
type Notifier interface {
	SendUploadComplete(ctx context.Context, to, title, externalURL string) error
	SendUploadFailed(ctx context.Context, to, title, reason string) error
}
