package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestSendInvoiceWithoutConfigurationIsUnavailable(t *testing.T) {
	config.Logger = zap.NewNop()
	service := &EmailService{}

	err := service.SendInvoice(context.Background(), InvoiceEmail{
		Number:      "GR-20260801-0001",
		ClientEmail: "maria@example.com",
	})
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("expected unavailable error without SMTP config, got %v", err)
	}
}

func TestRecipientsDeduplication(t *testing.T) {
	service := &EmailService{businessEmail: "shop@example.com"}

	extra := "SHOP@example.com"
	got := service.recipients(InvoiceEmail{
		ClientEmail:    "maria@example.com",
		ExtraRecipient: &extra,
	})

	want := []string{"maria@example.com", "shop@example.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestRecipientsIncludesExtra(t *testing.T) {
	service := &EmailService{businessEmail: "shop@example.com"}

	extra := "architect@example.com"
	got := service.recipients(InvoiceEmail{
		ClientEmail:    "maria@example.com",
		ExtraRecipient: &extra,
	})
	if len(got) != 3 || got[2] != extra {
		t.Errorf("expected extra recipient last, got %v", got)
	}
}

func TestIsCertificateError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("x509: certificate signed by unknown authority"), true},
		{fmt.Errorf("tls: first record does not look like a TLS handshake"), true},
		{fmt.Errorf("SSL routines: wrong version number"), true},
		{fmt.Errorf("dial tcp: connection refused"), false},
		{fmt.Errorf("535 authentication failed"), false},
	}
	for _, tc := range cases {
		if got := isCertificateError(tc.err); got != tc.want {
			t.Errorf("isCertificateError(%q) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestRenderInvoiceHTML(t *testing.T) {
	color := "Terracotta"
	message := "Thanks for choosing us!"
	html, err := RenderInvoiceHTML("Pisos GR", InvoiceEmail{
		InvoiceID:       uuid.New(),
		Number:          "GR-20260801-0042",
		Date:            "01/08/2026",
		ClientName:      "Maria Rojas",
		ClientEmail:     "maria@example.com",
		Color:           &color,
		AreaM2:          50,
		PricePerM2:      12000,
		Subtotal:        600000,
		Tax:             78000,
		Total:           678000,
		Status:          "PENDING",
		PersonalMessage: &message,
	})
	if err != nil {
		t.Fatalf("failed to render invoice: %v", err)
	}

	for _, fragment := range []string{
		"<title>Invoice GR-20260801-0042</title>",
		"Maria Rojas",
		"Terracotta",
		"₡678000.00",
		"Thanks for choosing us!",
		"Pisos GR",
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("rendered invoice is missing %q", fragment)
		}
	}
}
