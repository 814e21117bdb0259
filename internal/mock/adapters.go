package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/tagreel/videos-ms-go/internal/model"
	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/tagreel/videos-ms-go/internal/uuid"
)

type readSeekCloser struct {
	*bytes.Reader
}

func (readSeekCloser) Close() error { return nil }

// Storage implements port.Storage for tests.
type Storage struct {
	UploadURL   string
	DownloadURL string
	FileInfoOut port.FileInfo
	FileBody    []byte

	InitErr     error
	UploadErr   error
	DownloadErr error
	StatErr     error
	RemoveErr   error
	GetErr      error

	InitCalled     bool
	UploadKey      string
	UploadExpiry   time.Duration
	DownloadKey    string
	DownloadExpiry time.Duration
	StatKey        string
	RemovedKeys    []string
	GetKey         string
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitCalled = true
	return m.InitErr
}

func (m *Storage) GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.UploadKey = fileKey
	m.UploadExpiry = expiry
	return m.UploadURL, m.UploadErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.DownloadKey = fileKey
	m.DownloadExpiry = expiry
	return m.DownloadURL, m.DownloadErr
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatKey = fileKey
	return m.FileInfoOut, m.StatErr
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return readSeekCloser{bytes.NewReader(m.FileBody)}, nil
}

// Cache implements port.Cache for tests.
type Cache struct {
	Detail *port.PublicVideoDetail

	GetErr    error
	SetErr    error
	DeleteErr error

	GetCalled    bool
	SetCalled    bool
	SetDetail    *port.PublicVideoDetail
	DeleteCalled bool
	DeletedID    uuid.UUID
}

func (m *Cache) GetPublicDetail(ctx context.Context, id uuid.UUID) (*port.PublicVideoDetail, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Detail, nil
}

func (m *Cache) SetPublicDetail(ctx context.Context, id uuid.UUID, detail *port.PublicVideoDetail) error {
	m.SetCalled = true
	m.SetDetail = detail
	return m.SetErr
}

func (m *Cache) DeletePublicDetail(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

// Dispatcher implements port.TaskDispatcher for tests.
type Dispatcher struct {
	EnqueueErr error

	EnqueueCalled bool
	EnqueuedJobID uuid.UUID
	EnqueuedJob   *model.UploadJob
}

func (m *Dispatcher) EnqueueVideoUpload(ctx context.Context, job *model.UploadJob) error {
	m.EnqueueCalled = true
	m.EnqueuedJob = job
	if job != nil {
		m.EnqueuedJobID = job.ID
	}
	return m.EnqueueErr
}

// Decrypter implements port.CredentialDecrypter for tests.
type Decrypter struct {
	Token      string
	DecryptErr error

	DecryptCalled bool
	GotBlob       []byte
}

func (m *Decrypter) Decrypt(ctx context.Context, blob []byte) (string, error) {
	m.DecryptCalled = true
	m.GotBlob = blob
	if m.DecryptErr != nil {
		return "", m.DecryptErr
	}
	return m.Token, nil
}

// Platform implements port.VideoPlatform for tests.
type Platform struct {
	VideoOut  port.PlatformVideo
	UploadErr error

	UploadCalled bool
	GotInput     port.PlatformUploadInput
}

func (m *Platform) Upload(ctx context.Context, in port.PlatformUploadInput) (port.PlatformVideo, error) {
	m.UploadCalled = true
	m.GotInput = in
	return m.VideoOut, m.UploadErr
}

// Notifier implements port.Notifier for tests.
type Notifier struct {
	CompleteErr error
	FailedErr   error

	CompleteCalls int
	CompleteTo    string
	CompleteURL   string
	FailedCalls   int
	FailedTo      string
	FailedReason  string
}

func (m *Notifier) SendUploadComplete(ctx context.Context, to, title, externalURL string) error {
	m.CompleteCalls++
	m.CompleteTo = to
	m.CompleteURL = externalURL
	return m.CompleteErr
}

func (m *Notifier) SendUploadFailed(ctx context.Context, to, title, reason string) error {
	m.FailedCalls++
	m.FailedTo = to
	m.FailedReason = reason
	return m.FailedErr
}
