package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/tagreel/videos-ms-go/internal/port"
	"github.com/wneessen/go-mail"
)

const (
	subjectComplete = "Video upload completed"
	subjectFailed   = "Video upload failed"

	bodyComplete = "The video %q has been uploaded successfully.\n\nWatch it here: %s\n"
	bodyFailed   = "The video %q could not be uploaded.\n\nReason: %s\n\nPlease check the video platform settings of your shop and try again.\n"
)

// Mailer sends transactional mail about upload job outcomes.
type Mailer struct {
	client *mail.Client
	from   string
}

// compile-time check: *Mailer must satisfy port.Notifier
var _ port.Notifier = (*Mailer)(nil)

func NewMailer(host string, smtpPort int, user, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(smtpPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create SMTP client: %w", err)
	}
	return &Mailer{client: client, from: from}, nil
}

func (m *Mailer) SendUploadComplete(ctx context.Context, to, title, externalURL string) error {
	log.Printf("sending upload-complete notification to %q...", to)
	return m.send(ctx, to, subjectComplete, fmt.Sprintf(bodyComplete, title, externalURL))
}

func (m *Mailer) SendUploadFailed(ctx context.Context, to, title, reason string) error {
	log.Printf("sending upload-failed notification to %q...", to)
	return m.send(ctx, to, subjectFailed, fmt.Sprintf(bodyFailed, title, reason))
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
