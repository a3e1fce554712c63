// internal/app/broadcast/broadcast.go
package broadcast

import (
	"context"
	"fmt"

	announcementstore "github.com/communitycare/carehub/internal/app/store/announcements"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailConfig carries the SMTP settings for decision emails. An empty Host
// disables email entirely (local development default).
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Announcer delivers the best-effort notification side effects of admin
// decisions: a community announcement document plus an email to the event
// organizer. Callers treat every failure as non-fatal; the primary state
// change has already committed by the time an Announcer runs.
type Announcer struct {
	Announcements *announcementstore.Store
	Users         *userstore.Store
	Mail          MailConfig
	Log           *zap.Logger
}

func New(db *mongo.Database, mail MailConfig, logger *zap.Logger) *Announcer {
	return &Announcer{
		Announcements: announcementstore.New(db),
		Users:         userstore.New(db),
		Mail:          mail,
		Log:           logger,
	}
}

// EventApproved posts an announcement for the community and emails the
// organizer. Both steps are attempted even if one fails; the first error
// is returned for the caller to log.
func (a *Announcer) EventApproved(ctx context.Context, event models.Event) error {
	var firstErr error

	_, err := a.Announcements.Create(ctx, models.Announcement{
		Title:   "New event: " + event.Title,
		Body:    fmt.Sprintf("%s on %s at %s is now open.", event.Title, event.Date.Format("Jan 2, 2006"), event.Location),
		EventID: &event.ID,
		Active:  true,
	})
	if err != nil {
		firstErr = err
	}

	subject := fmt.Sprintf("Your event %q was approved", event.Title)
	body := fmt.Sprintf("Good news! Your event %q (%s) has been approved and is now visible to the community.",
		event.Title, event.Date.Format("Jan 2, 2006"))
	if err := a.emailCreator(ctx, event, subject, body); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// EventRejected emails the organizer with the reason. No announcement is
// posted for rejections.
func (a *Announcer) EventRejected(ctx context.Context, event models.Event, reason string) error {
	subject := fmt.Sprintf("Your event %q was not approved", event.Title)
	body := fmt.Sprintf("Your event %q was reviewed and not approved.\n\nReason: %s", event.Title, reason)
	return a.emailCreator(ctx, event, subject, body)
}

func (a *Announcer) emailCreator(ctx context.Context, event models.Event, subject, body string) error {
	if a.Mail.Host == "" {
		a.Log.Debug("mail disabled, skipping decision email",
			zap.String("event_id", event.ID.Hex()))
		return nil
	}

	creator, err := a.Users.GetByID(ctx, event.CreatedBy)
	if err != nil {
		return fmt.Errorf("lookup event creator: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", a.Mail.From, a.Mail.FromName)
	m.SetHeader("To", creator.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(a.Mail.Host, a.Mail.Port, a.Mail.User, a.Mail.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send decision email: %w", err)
	}
	return nil
}
