package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendOutcomeEmail(ctx context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error
	SendAdminPendingNotice(ctx context.Context, snapshot models.RequestSnapshot) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// sendFunc delivers one rendered HTML message
type sendFunc func(toEmail, subject, htmlBody string) error

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config      SMTPConfig
	adminEmails []string
	logger      zerolog.Logger
	send        sendFunc
}

// NewEmailService creates a new EmailService. adminEmails receive the
// pending-request notice.
func NewEmailService(config SMTPConfig, adminEmails []string, logger zerolog.Logger) EmailService {
	s := &EmailServiceImpl{
		config:      config,
		adminEmails: adminEmails,
		logger:      logger,
	}
	s.send = s.sendHTMLEmail
	return s
}

// SendOutcomeEmail tells the requester whether their request was approved
func (s *EmailServiceImpl) SendOutcomeEmail(ctx context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error {
	subject, body, err := renderOutcome(contact, snapshot, decision)
	if err != nil {
		return err
	}

	if !s.credentialsConfigured() {
		s.logger.Warn().
			Str("toEmail", contact.Email).
			Bool("approved", decision.Approved).
			Str("reasons", decision.Reasons).
			Msg("SMTP credentials not configured - outcome email not sent.")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.send(contact.Email, subject, body)
}

// SendAdminPendingNotice tells every configured administrator a request is waiting
func (s *EmailServiceImpl) SendAdminPendingNotice(ctx context.Context, snapshot models.RequestSnapshot) error {
	reviewURL := fmt.Sprintf("%s/api/v1/pending-requests/%d", strings.TrimRight(s.config.BaseURL, "/"), snapshot.ID)
	subject, body, err := renderAdminNotice(snapshot, reviewURL)
	if err != nil {
		return err
	}

	if !s.credentialsConfigured() || len(s.adminEmails) == 0 {
		s.logger.Warn().
			Int64("pendingRequestId", snapshot.ID).
			Str("reviewURL", reviewURL).
			Int("adminRecipients", len(s.adminEmails)).
			Msg("SMTP credentials or admin recipients not configured - pending notice not sent.")
		return nil
	}

	var failed []string
	for _, to := range s.adminEmails {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.send(to, subject, body); err != nil {
			failed = append(failed, to)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("pending notice not delivered to %s", strings.Join(failed, ", "))
	}
	return nil
}

func (s *EmailServiceImpl) credentialsConfigured() bool {
	return s.config.Username != "" && s.config.Password != ""
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	message := buildMessage(fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail), toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}

// buildMessage writes headers in a fixed order followed by the HTML body
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.Bytes()
}
