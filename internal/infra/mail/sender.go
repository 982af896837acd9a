package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

var leadAssignedTmpl = template.Must(template.ParseFS(templatesFS, "templates/lead_assigned.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer swaps the SMTP dialer, mostly for tests.
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

// SendLeadAssigned tells the sales inbox that a new lead entered the pipeline.
func (s *EmailSender) SendLeadAssigned(to string, lead entity.Lead) error {
	m, err := s.leadAssignedMessage(to, lead)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) leadAssignedMessage(to string, lead entity.Lead) (*gomail.Message, error) {
	data := LeadAssignedEmailData{
		Name:          lead.Name,
		Company:       lead.Company,
		Email:         lead.Email,
		Value:         lead.Value,
		Probability:   lead.Probability,
		Stage:         string(lead.Stage),
		AssignedTo:    lead.AssignedTo,
		ExpectedClose: lead.ExpectedClose,
		AIScore:       lead.AIScore,
	}

	var body bytes.Buffer
	if err := leadAssignedTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s (AI score %d)", lead.Name, lead.AIScore))
	m.SetBody("text/html", body.String())
	return m, nil
}
