package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier delivers transactional mail through SendGrid.
type SendGridNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string) *SendGridNotifier {
	return &SendGridNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (n *SendGridNotifier) SendOwnerContactRequest(ctx context.Context, ownerEmail, vehicleName, passengerEmail, message string) error {
	subject := fmt.Sprintf("Rental request for your %s", vehicleName)
	plainText := fmt.Sprintf("%s wants to rent your %s and needs you to arrange handover.\n\nTheir note: %s", passengerEmail, vehicleName, message)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<h2>New rental request</h2>
			<p><strong>%s</strong> wants to rent your <strong>%s</strong> and needs you to arrange handover.</p>
			<p>Their note: %s</p>
			<p>Confirm in your dashboard to let the booking proceed.</p>
		</body>
		</html>`, passengerEmail, vehicleName, message)

	return n.send(ownerEmail, subject, plainText, htmlContent)
}

func (n *SendGridNotifier) SendOverdueReminder(ctx context.Context, passengerEmail, vehicleName string, feeCents int64) error {
	subject := fmt.Sprintf("Your rental of %s is overdue", vehicleName)
	plainText := fmt.Sprintf("Your rental of %s has passed its return time. Overtime charges so far: %d cents. Please return the vehicle as soon as possible.", vehicleName, feeCents)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<h2>Rental overdue</h2>
			<p>Your rental of <strong>%s</strong> has passed its return time.</p>
			<p>Overtime charges so far: <strong>%d cents</strong>.</p>
			<p>Please return the vehicle as soon as possible to stop further charges.</p>
		</body>
		</html>`, vehicleName, feeCents)

	return n.send(passengerEmail, subject, plainText, htmlContent)
}

func (n *SendGridNotifier) send(to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
