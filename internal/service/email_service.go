package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"lingotaboo/internal/models"
)

// EmailService sends progress digest emails via Amazon SES. The service is
// disabled (a no-op) unless a from-address is configured, so local setups
// need no AWS credentials.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendProgressDigest sends a summary of the user's completed games.
func (s *EmailService) SendProgressDigest(ctx context.Context, toEmail, toName string, stats *models.UserStats) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): progress digest to %s", toEmail)
		return nil
	}

	languages := "none yet"
	if len(stats.Languages) > 0 {
		languages = strings.Join(stats.Languages, ", ")
	}

	subject := "Your LingoTaboo Progress"
	textBody := fmt.Sprintf(`Hi %s,

Here is your LingoTaboo progress so far:

  Games completed:   %d
  Average score:     %d
  Best score:        %d
  Key words found:   %d
  Languages played:  %s

Keep playing to grow your vocabulary.

---
This is an automated email from LingoTaboo. Please do not reply.
`, toName, stats.TotalGames, stats.AverageScore, stats.BestScore, stats.TotalWordsFound, languages)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="background-color: #4a90e2; color: white; padding: 20px; text-align: center;">Your LingoTaboo Progress</h1>
		<p>Hi %s,</p>
		<p>Here is your progress so far:</p>
		<ul>
			<li>Games completed: <strong>%d</strong></li>
			<li>Average score: <strong>%d</strong></li>
			<li>Best score: <strong>%d</strong></li>
			<li>Key words found: <strong>%d</strong></li>
			<li>Languages played: <strong>%s</strong></li>
		</ul>
		<p>Keep playing to grow your vocabulary.</p>
		<p style="font-size: 12px; color: #666;">This is an automated email from LingoTaboo. Please do not reply.</p>
	</div>
</body>
</html>
`, toName, stats.TotalGames, stats.AverageScore, stats.BestScore, stats.TotalWordsFound, languages)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
