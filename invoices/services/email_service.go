package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"invoicing-backend/config"
	"invoicing-backend/db/models"
	"invoicing-backend/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// EmailService delivers rendered invoices over SMTP. The gomail dialer is
// the primary transport; certificate failures fall back to a direct SMTP
// session with relaxed verification, one recipient at a time.
type EmailService struct {
	host          string
	port          int
	username      string
	password      string
	from          string
	fromName      string
	businessEmail string

	dialer *gomail.Dialer
	db     *gorm.DB
}

// NewEmailServiceFromEnv builds the service from SMTP_* environment
// variables. Missing host or from-address leaves the service unavailable;
// sends then report ErrUnavailable instead of attempting anything.
func NewEmailServiceFromEnv(db *gorm.DB) *EmailService {
	port, err := strconv.Atoi(config.GetEnvOr("SMTP_PORT", "587"))
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to 587",
			zap.String("provided_port", config.GetEnv("SMTP_PORT")),
			zap.Error(err))
		port = 587
	}

	s := &EmailService{
		host:          config.GetEnv("SMTP_HOST"),
		port:          port,
		username:      config.GetEnv("SMTP_USER"),
		password:      config.GetEnv("SMTP_PASSWORD"),
		from:          config.GetEnv("SMTP_FROM"),
		fromName:      config.GetEnvOr("SMTP_FROM_NAME", "Invoicing"),
		businessEmail: config.GetEnv("BUSINESS_EMAIL"),
		db:            db,
	}

	if s.Available() {
		s.dialer = gomail.NewDialer(s.host, s.port, s.username, s.password)
		config.Logger.Info("Mailer initialized successfully",
			zap.String("host", s.host), zap.Int("port", s.port))
	} else {
		config.Logger.Warn("Mailer not configured; invoice emails are disabled")
	}

	return s
}

// Available reports whether the service has a usable configuration.
func (s *EmailService) Available() bool {
	return s.host != "" && s.from != ""
}

// recipients returns the client address plus the business copy and any extra
// recipient, deduplicated case-insensitively.
func (s *EmailService) recipients(email InvoiceEmail) []string {
	out := []string{email.ClientEmail}
	seen := map[string]bool{strings.ToLower(email.ClientEmail): true}

	for _, candidate := range []string{s.businessEmail, derefOrEmpty(email.ExtraRecipient)} {
		if candidate == "" || seen[strings.ToLower(candidate)] {
			continue
		}
		seen[strings.ToLower(candidate)] = true
		out = append(out, candidate)
	}
	return out
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SendInvoice renders and sends the invoice document.
func (s *EmailService) SendInvoice(ctx context.Context, email InvoiceEmail) error {
	if !s.Available() {
		config.Logger.Warn("Invoice email skipped: mailer not configured",
			zap.String("invoiceNumber", email.Number))
		return fmt.Errorf("email transport not configured: %w", apperr.ErrUnavailable)
	}

	html, err := RenderInvoiceHTML(s.fromName, email)
	if err != nil {
		return err
	}

	recipients := s.recipients(email)
	subject := fmt.Sprintf("Invoice %s - %s", email.Number, s.fromName)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	sendErr := s.dialer.DialAndSend(m)
	if sendErr == nil {
		s.logAttempt(email.InvoiceID, recipients, "smtp", true, nil)
		config.Logger.Info("Invoice email sent",
			zap.String("invoiceNumber", email.Number),
			zap.Strings("recipients", recipients))
		return nil
	}

	config.Logger.Error("Failed to send invoice email via SMTP",
		zap.String("invoiceNumber", email.Number),
		zap.Strings("recipients", recipients),
		zap.Error(sendErr))

	if isCertificateError(sendErr) {
		config.Logger.Warn("Certificate failure; retrying with relaxed TLS verification",
			zap.String("invoiceNumber", email.Number))

		if fbErr := s.sendDirect(subject, html, recipients); fbErr == nil {
			s.logAttempt(email.InvoiceID, recipients, "smtp-fallback", true, nil)
			config.Logger.Info("Invoice email sent via fallback transport",
				zap.String("invoiceNumber", email.Number))
			return nil
		} else {
			s.logAttempt(email.InvoiceID, recipients, "smtp-fallback", false, fbErr)
			return fmt.Errorf("fallback delivery failed: %v: %w", fbErr, apperr.ErrTransient)
		}
	}

	s.logAttempt(email.InvoiceID, recipients, "smtp", false, sendErr)
	return fmt.Errorf("failed to send invoice email: %v: %w", sendErr, apperr.ErrTransient)
}

// isCertificateError matches the SSL/certificate failure class that makes
// the relaxed-verification fallback worth trying.
func isCertificateError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"certificate", "x509", "tls", "ssl"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// sendDirect talks SMTP by hand with InsecureSkipVerify, one recipient per
// session, mirroring what the dialer would have sent.
func (s *EmailService) sendDirect(subject, html string, recipients []string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	tlsConfig := &tls.Config{ServerName: s.host, InsecureSkipVerify: true}

	for _, rcpt := range recipients {
		if err := s.sendDirectTo(addr, tlsConfig, rcpt, subject, html); err != nil {
			return fmt.Errorf("direct send to %s failed: %w", rcpt, err)
		}
	}
	return nil
}

func (s *EmailService) sendDirectTo(addr string, tlsConfig *tls.Config, rcpt, subject, html string) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(tlsConfig); err != nil {
			return err
		}
	}

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(rcpt); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", rcpt)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	if _, err := w.Write([]byte(msg.String())); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.Quit()
}

// logAttempt records the delivery attempt best-effort; a logging failure
// never changes the send result.
func (s *EmailService) logAttempt(invoiceID uuid.UUID, recipients []string, transport string, success bool, attemptErr error) {
	if s.db == nil {
		return
	}

	entry := &models.EmailLog{
		InvoiceID:  invoiceID,
		Recipients: strings.Join(recipients, ","),
		Transport:  transport,
		Success:    success,
	}
	if attemptErr != nil {
		text := attemptErr.Error()
		entry.ErrorText = &text
	}

	if err := s.db.Create(entry).Error; err != nil {
		config.Logger.Warn("Failed to record email log entry", zap.Error(err))
	}
}
