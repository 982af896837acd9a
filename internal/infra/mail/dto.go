package mail

import "gopkg.in/gomail.v2"

type LeadAssignedEmailData struct {
	Name          string
	Company       string
	Email         string
	Value         float64
	Probability   int
	Stage         string
	AssignedTo    string
	ExpectedClose string
	AIScore       int
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer Dialer
}
