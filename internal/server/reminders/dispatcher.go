package reminders

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/dmitrijs2005/doclife/internal/server/mail"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/jhillyerd/enmime"
)

const (
	Subject  = "Document Expiry Reminder"
	FromName = "Document Life Tracker"
)

var bodyTemplate = template.Must(template.New("reminder").Parse(`<p>Hello {{.Name}},</p>
<p>Your document <b>{{.DocumentType}}</b> will expire on <b>{{.ExpiryDate}}</b>.</p>
<p>Please take necessary action before expiry.</p>
<p>Regards,<br>Team - Document Life Tracker</p>
`))

type bodyData struct {
	Name         string
	DocumentType string
	ExpiryDate   string
}

// RenderBody renders the HTML reminder for one document.
func RenderBody(user models.User, doc models.Document) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		Name:         user.Name,
		DocumentType: doc.DocumentType,
		ExpiryDate:   doc.ExpiryDate.Format(common.DateLayout),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Notifier delivers the reminder for one (user, document) pair.
type Notifier interface {
	Dispatch(ctx context.Context, user models.User, doc models.Document) error
}

type DispatcherConfig struct {
	// From is the sender address. It doubles as the relay login.
	From string
	// Enabled is false when sender credentials are missing. Dispatch then
	// logs and reports success without contacting the relay.
	Enabled bool
}

// Dispatcher mails reminders through an enmime.Sender.
type Dispatcher struct {
	cfg    DispatcherConfig
	sender enmime.Sender
	logger logging.Logger
	now    func() time.Time
}

func NewDispatcher(cfg DispatcherConfig, sender enmime.Sender, logger logging.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, sender: sender, logger: logger, now: time.Now}
}

// Dispatch renders and sends one reminder. Failures are returned to the
// caller, which decides whether to continue.
func (d *Dispatcher) Dispatch(ctx context.Context, user models.User, doc models.Document) error {
	if !d.cfg.Enabled {
		d.logger.Warn(ctx, "email credentials not set, skipping reminder",
			"recipient", user.Email, "user_id", user.ID, "document_id", doc.ID)
		return nil
	}

	body, err := RenderBody(user, doc)
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	b, err := mail.Build(mail.Message{
		FromName: FromName,
		From:     d.cfg.From,
		ToName:   user.Name,
		To:       user.Email,
		Subject:  Subject,
		HTML:     body,
	}, d.now())
	if err != nil {
		return err
	}

	if err := b.Send(d.sender); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	d.logger.Debug(ctx, "reminder sent", "recipient", user.Email, "document_id", doc.ID)
	return nil
}
