package platform

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/tagreel/videos-ms-go/internal/port"
)

const defaultVisibility = "unlisted"

// YouTubeUploader streams videos to the external hosting platform using a
// shop's own refresh credential. A fresh service client is built per upload
// because every shop authenticates as itself.
type YouTubeUploader struct {
	clientID     string
	clientSecret string
}

// compile-time check: *YouTubeUploader must satisfy port.VideoPlatform
var _ port.VideoPlatform = (*YouTubeUploader)(nil)

func NewYouTubeUploader(clientID, clientSecret string) *YouTubeUploader {
	return &YouTubeUploader{clientID: clientID, clientSecret: clientSecret}
}

func (u *YouTubeUploader) Upload(ctx context.Context, in port.PlatformUploadInput) (port.PlatformVideo, error) {
	log.Printf("uploading %q (%d bytes) to the video platform...", in.Title, in.SizeBytes)

	conf := &oauth2.Config{
		ClientID:     u.clientID,
		ClientSecret: u.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: in.RefreshToken})

	svc, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return port.PlatformVideo{}, classifyPlatformErr(err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       in.Title,
			Description: in.Description,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: defaultVisibility},
	}

	// Media streams the reader through the resumable upload protocol in
	// chunks; the file is never held in memory whole.
	call := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(in.Body, googleapi.ContentType("video/*"))
	res, err := call.Context(ctx).Do()
	if err != nil {
		return port.PlatformVideo{}, classifyPlatformErr(err)
	}

	visibility := defaultVisibility
	if res.Status != nil && res.Status.PrivacyStatus != "" {
		visibility = res.Status.PrivacyStatus
	}

	return port.PlatformVideo{
		ExternalID:  res.Id,
		ExternalURL: "https://www.youtube.com/watch?v=" + res.Id,
		Visibility:  visibility,
	}, nil
}

// classifyPlatformErr separates credential/quota rejections, which retrying
// cannot fix, from transient platform trouble.
func classifyPlatformErr(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400, 401, 403, 404:
			return fmt.Errorf("%w: platform rejected upload: %v", port.ErrPermanent, err)
		}
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < 500 {
		return fmt.Errorf("%w: invalid platform credential: %v", port.ErrPermanent, err)
	}
	return fmt.Errorf("platform upload failed: %w", err)
}
