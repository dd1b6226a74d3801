// Package mailer sends password-reset email over SMTP.
package mailer

import (
	"fmt"

	"github.com/kcouncil/portal/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer dials the SMTP server once per message. There is no queue and no
// retry; a failed send is reported to the caller.
type Mailer struct {
	smtp config.SMTPConfig
}

func New(smtp config.SMTPConfig) *Mailer {
	return &Mailer{smtp: smtp}
}

// SendPasswordReset mails the reset link to the member.
func (mailer *Mailer) SendPasswordReset(to string, resetURL string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.smtp.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Password Reset Request")
	message.SetBody("text/plain", fmt.Sprintf("Click the link to reset your password: %s", resetURL))

	dialer := gomail.NewDialer(mailer.smtp.Host, mailer.smtp.Port, mailer.smtp.Username, mailer.smtp.Password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
