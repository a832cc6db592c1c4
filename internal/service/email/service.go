package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"portail-rh/internal/config"
)

type Service interface {
	SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendStatusChangeEmail(ctx context.Context, toEmail, fullName, requestType, status, message string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	return &service{
		client:       resend.NewClient(cfg.ResendAPIKey),
		config:       cfg,
		templatePath: "internal/service/templates/email",
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Portail RH <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, fullName, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Vérification de votre adresse email",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(toEmail, "Vérification de votre adresse email - Portail RH", "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Réinitialisation du mot de passe",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(toEmail, "Réinitialisation du mot de passe - Portail RH", "reset_password.html", data)
}

func (s *service) SendStatusChangeEmail(ctx context.Context, toEmail, fullName, requestType, status, message string) error {
	data := struct {
		Title       string
		Name        string
		RequestType string
		Status      string
		Message     string
		Link        string
	}{
		Title:       "Mise à jour de votre demande",
		Name:        fullName,
		RequestType: requestType,
		Status:      status,
		Message:     message,
		Link:        fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Votre demande « %s » : %s - Portail RH", requestType, status), "status_change.html", data)
}
