// File: services/email_service.go
package services

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
)

// EmailServiceInterface sends one transactional email. Callers treat every
// send as best-effort.
type EmailServiceInterface interface {
	Send(to, subject, htmlBody string) error
}

// sesSender is the slice of the SES client we call; *ses.SES satisfies it.
type sesSender interface {
	SendEmail(input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SESEmailService delivers email through Amazon SES.
type SESEmailService struct {
	client sesSender
	sender string
}

var _ EmailServiceInterface = (*SESEmailService)(nil)

// NewSESEmailService builds an SES-backed email service for the given
// region and verified sender address.
func NewSESEmailService(region, sender string) *SESEmailService {
	client := ses.New(session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	})))
	return &SESEmailService{client: client, sender: sender}
}

// Send delivers a single HTML email.
func (s *SESEmailService) Send(to, subject, htmlBody string) error {
	_, err := s.client.SendEmail(&ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
			},
		},
	})
	if err != nil {
		logger.Error.Printf("[SESEmailService.Send] to=%s failed: %v", to, err)
		return err
	}

	logger.Debug.Printf("[SESEmailService.Send] to=%s subject=%q", to, subject)
	return nil
}
