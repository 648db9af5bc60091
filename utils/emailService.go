package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// SendSubmissionEmail sends a best-effort confirmation after a successful
// submission. Disabled when no SendGrid key is configured.
func SendSubmissionEmail(toEmail, subject, body string) error {
	if config.AppConfig.SendGridApiKey == "" || toEmail == "" {
		return nil
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail("", toEmail)
	htmlBody := fmt.Sprintf("<p>%s</p>", body)
	message := mail.NewSingleEmail(from, subject, to, body, htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid returned %d sending to %s", resp.StatusCode, toEmail)
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}
	return nil
}
