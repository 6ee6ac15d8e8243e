package utils

import (
	"fmt"
	"log"
	"net/smtp"
)

// SendMail delivers a single HTML mail through the configured SMTP relay.
// Returns false without error when mail is not configured, so callers can
// treat delivery as best-effort.
func SendMail(to string, subject string, html string) (bool, error) {
	if Cfg.SMTPHost == "" {
		log.Printf("mail not configured, skipping %q to %s", subject, to)
		return false, nil
	}

	from := Cfg.SMTPFrom
	if from == "" {
		from = Cfg.SMTPUser
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		from, to, subject, html,
	))

	addr := Cfg.SMTPHost + ":" + Cfg.SMTPPort
	auth := smtp.PlainAuth("", Cfg.SMTPUser, Cfg.SMTPPassword, Cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
		return false, err
	}
	return true, nil
}
