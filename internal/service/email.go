package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendCommunityInvitation(ctx context.Context, email, communityName, senderName, inviteLink string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", email)

	subject := fmt.Sprintf("You've been invited to join %s", communityName)
	plain := fmt.Sprintf(
		"Hello,\n\n%s has invited you to join the community %s.\n\nAccept the invitation here:\n%s\n\nThis link can be used once and expires soon.",
		senderName, communityName, inviteLink)
	html := fmt.Sprintf(
		"<p>Hello,</p><p><strong>%s</strong> has invited you to join the community <strong>%s</strong>.</p><p><a href=%q>Accept the invitation</a></p><p>This link can be used once and expires soon.</p>",
		senderName, communityName, inviteLink)

	message := mail.NewSingleEmail(from, subject, recipient, plain, html)
	client := sendgrid.NewSendClient(s.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}
