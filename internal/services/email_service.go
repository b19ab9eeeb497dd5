package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"sportstravel/internal/models"
)

type EmailService interface {
	SendQuoteEmail(lead *models.Lead, quote *models.Quote, event *models.Event, pkg *models.Package) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

// NewEmailService builds the SMTP-backed sender. With dryRun the message is
// logged instead of dialed, which is what dev and CI environments run.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool) EmailService {
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		dryRun: dryRun,
	}
}

func (s *emailService) SendQuoteEmail(lead *models.Lead, quote *models.Quote, event *models.Event, pkg *models.Package) error {
	subject := fmt.Sprintf("Your Quote for %s", event.Name)
	body := fmt.Sprintf(`
		<h2>Dear %s,</h2>
		<p>Thank you for your interest in %s!</p>
		<h3>Quote Details</h3>
		<ul>
			<li>Package: %s (%s)</li>
			<li>Travel Date: %s</li>
			<li>Number of Travelers: %d</li>
			<li>Base Price: $%.2f</li>
			<li>Final Price: $%.2f</li>
		</ul>
		<p>This quote is valid until %s.</p>
		<p>Best regards,<br>The Sports Travel Team</p>
	`, lead.Name, event.Name, pkg.Name, pkg.Tier,
		quote.TravelDate.Format("02 Jan 2006"), quote.NumberOfTravelers,
		quote.BasePrice, quote.FinalPrice, quote.ValidUntil.Format("02 Jan 2006"))

	if s.dryRun {
		log.Printf("email dry-run: to=%s subject=%q", lead.Email, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send quote email: %w", err)
	}
	return nil
}
