package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLoanApplicationReceived(toEmail, fullName string, amount float64, durationMonths int) error
	SendNotificationEmail(toEmail, title, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendLoanApplicationReceived(toEmail, fullName string, amount float64, durationMonths int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "We received your loan application")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your loan application has been received and is now pending review.</p>
			<p><b>Amount:</b> %.2f<br/><b>Term:</b> %d months</p>
			<p>We will notify you as soon as a decision is made.</p>
		</div>
	`, fullName, amount, durationMonths)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

// SendNotificationEmail mirrors an in-app notification to e-mail. Delivery is
// best effort; the notification row is already committed.
func (s *emailService) SendNotificationEmail(toEmail, title, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", title)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>%s</p>
			<p>Sign in to your LendHub account for details.</p>
		</div>
	`, title, message)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
