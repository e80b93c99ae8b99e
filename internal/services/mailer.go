package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"industry-lens/internal/models"
)

type EmailService interface {
	SendWelcomeEmail(user *models.User) error
	SendReviewApprovedEmail(user *models.User, review *models.Review, prof *models.Professional) error
	SendReviewRejectedEmail(user *models.User, review *models.Review, prof *models.Professional, reason, details string) error
	SendPasswordResetEmail(user *models.User, resetToken string) error
}

// GomailMailer delivers over SMTP.
type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailMailer(host string, port int, username, password, from string) *GomailMailer {
	return &GomailMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *GomailMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("[EMAIL] Failed to send %q to %s: %v", subject, to, err)
		return err
	}
	return nil
}

func (m *GomailMailer) SendWelcomeEmail(user *models.User) error {
	body := fmt.Sprintf(`
		<h2>Welcome to Industry Lens, %s!</h2>
		<p>Your account is ready. Share your genuine, first-hand experiences working
		with entertainment industry professionals — reviews are published anonymously
		after moderation.</p>`,
		user.Username)
	return m.send(user.Email, "Welcome to Industry Lens!", body)
}

func (m *GomailMailer) SendReviewApprovedEmail(user *models.User, review *models.Review, prof *models.Professional) error {
	body := fmt.Sprintf(`
		<h2>Review Approved!</h2>
		<p>Hi %s,</p>
		<p>Your review <strong>%q</strong> of %s has been approved and is now visible to others.</p>`,
		user.Username, review.Title, prof.Name)
	return m.send(user.Email, fmt.Sprintf("Your review of %s has been approved!", prof.Name), body)
}

func (m *GomailMailer) SendReviewRejectedEmail(user *models.User, review *models.Review, prof *models.Professional, reason, details string) error {
	body := fmt.Sprintf(`
		<h2>Review Not Approved</h2>
		<p>Hi %s,</p>
		<p>Your review <strong>%q</strong> of %s was not approved.</p>
		<p>Reason: %s</p>`,
		user.Username, review.Title, prof.Name, reason)
	if details != "" {
		body += fmt.Sprintf("<p>Details: %s</p>", details)
	}
	return m.send(user.Email, fmt.Sprintf("Update on your review of %s", prof.Name), body)
}

func (m *GomailMailer) SendPasswordResetEmail(user *models.User, resetToken string) error {
	body := fmt.Sprintf(`
		<h2>Reset your password</h2>
		<p>Hi %s,</p>
		<p>Use the following token to reset your Industry Lens password. It expires in one hour.</p>
		<p><code>%s</code></p>
		<p>If you did not request this, you can safely ignore this email.</p>`,
		user.Username, resetToken)
	return m.send(user.Email, "Reset your Industry Lens password", body)
}

// LogMailer is the development fallback when SMTP is not configured: every
// email is logged instead of sent.
type LogMailer struct{}

func (LogMailer) SendWelcomeEmail(user *models.User) error {
	log.Printf("[EMAIL] welcome -> %s", user.Email)
	return nil
}

func (LogMailer) SendReviewApprovedEmail(user *models.User, review *models.Review, prof *models.Professional) error {
	log.Printf("[EMAIL] review approved -> %s (review %s, professional %s)", user.Email, review.ID, prof.Name)
	return nil
}

func (LogMailer) SendReviewRejectedEmail(user *models.User, review *models.Review, prof *models.Professional, reason, details string) error {
	log.Printf("[EMAIL] review rejected -> %s (review %s, professional %s, reason %q)", user.Email, review.ID, prof.Name, reason)
	return nil
}

func (LogMailer) SendPasswordResetEmail(user *models.User, resetToken string) error {
	log.Printf("[EMAIL] password reset -> %s", user.Email)
	return nil
}
