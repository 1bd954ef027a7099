package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/sensibot/crmsync/internal/infra/queue"
)

const reportTemplate = `
<h2>Sensibot sync report</h2>
<p>Pass <b>{{.PassID}}</b> finished at {{.FinishedAt.Format "02 Jan 2006 15:04:05 MST"}}.</p>
<ul>
  <li>Phone: {{.Phone}}</li>
  <li>Lead: {{.LeadID}}{{if .LeadCreated}} (newly created){{end}}</li>
  <li>Chat events processed: {{.EventsProcessed}}</li>
  <li>Updates appended: {{.UpdatesAppended}}</li>
</ul>
`

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

func (s *EmailSender) SendSyncReport(payload queue.SyncCompletedPayload) error {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, payload); err != nil {
		return fmt.Errorf("failed to render report template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("Sync report: %d chat logs for %s", payload.EventsProcessed, payload.Phone))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	return nil
}
