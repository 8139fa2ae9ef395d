package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceEmail is the rendering payload assembled from a persisted invoice.
type InvoiceEmail struct {
	InvoiceID   uuid.UUID
	Number      string
	Date        string
	ClientName  string
	ClientEmail string
	Color       *string
	AreaM2      float64
	PricePerM2  float64
	Subtotal    float64
	Tax         float64
	Total       float64
	Description *string
	Notes       *string
	Status      string
	ImageURL    *string

	ExtraRecipient  *string
	PersonalMessage *string
}

// formatMoney renders an exact two-decimal colón amount.
func formatMoney(v float64) string {
	return "₡" + decimal.NewFromFloat(v).StringFixed(2)
}

func formatArea(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + " m²"
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": formatMoney,
	"area":  formatArea,
	"lower": strings.ToLower,
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Invoice {{.Email.Number}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
    .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; }
    .header { text-align: center; margin-bottom: 30px; padding-bottom: 20px; border-bottom: 3px solid #007bff; }
    .invoice-info { background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .details-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
    .details-table th { background: #007bff; color: white; padding: 12px; text-align: left; }
    .details-table td { padding: 8px; border-bottom: 1px solid #eee; }
    .total-section { background: #e3f2fd; padding: 20px; border-radius: 8px; margin: 20px 0; text-align: right; }
    .total-amount { font-size: 24px; font-weight: bold; color: #007bff; }
    .notes { background: #fff3cd; padding: 15px; border-radius: 8px; margin: 20px 0; }
    .status-badge { display: inline-block; padding: 6px 12px; border-radius: 20px; font-size: 12px; font-weight: bold; }
    .status-pending { background: #fff3cd; color: #856404; }
    .status-sent { background: #cce5ff; color: #004085; }
    .status-paid { background: #d4edda; color: #155724; }
    .status-void { background: #f8d7da; color: #721c24; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>{{.BusinessName}}</h1>
      <div>Electronic Invoicing</div>
    </div>

    <div class="invoice-info">
      <h2>Invoice {{.Email.Number}}</h2>
      <p>
        <strong>Date:</strong> {{.Email.Date}}<br>
        <strong>Client:</strong> {{.Email.ClientName}}<br>
        <strong>Email:</strong> {{.Email.ClientEmail}}
      </p>
      <span class="status-badge status-{{lower .Email.Status}}">{{.Email.Status}}</span>
    </div>

    {{if .Email.PersonalMessage}}<p>{{.Email.PersonalMessage}}</p>{{end}}

    {{if .Email.ImageURL}}
    <div style="margin: 20px 0; text-align: center;">
      <h3>Selected Model</h3>
      <img src="{{.Email.ImageURL}}" style="max-width: 400px; border-radius: 8px;" alt="Selected model">
    </div>
    {{end}}

    <table class="details-table">
      <thead>
        <tr><th>Service</th><th>Detail</th></tr>
      </thead>
      <tbody>
        <tr><td><strong>Description</strong></td><td>{{if .Email.Description}}{{.Email.Description}}{{else}}Installation service{{end}}</td></tr>
        {{if .Email.Color}}<tr><td><strong>Selected color</strong></td><td>{{.Email.Color}}</td></tr>{{end}}
        <tr><td><strong>Area</strong></td><td>{{area .Email.AreaM2}}</td></tr>
        <tr><td><strong>Price per m²</strong></td><td>{{money .Email.PricePerM2}}</td></tr>
        <tr><td><strong>Subtotal</strong></td><td>{{money .Email.Subtotal}}</td></tr>
        <tr><td><strong>Tax (13%)</strong></td><td>{{money .Email.Tax}}</td></tr>
      </tbody>
    </table>

    <div class="total-section">
      <div><strong>Total due</strong></div>
      <div class="total-amount">{{money .Email.Total}}</div>
    </div>

    {{if .Email.Notes}}
    <div class="notes"><strong>Notes:</strong><br>{{.Email.Notes}}</div>
    {{end}}

    <div class="footer">
      <p><strong>Thank you for your business!</strong></p>
      <p>This invoice was generated automatically.</p>
    </div>
  </div>
</body>
</html>
`))

type invoiceTemplateData struct {
	BusinessName string
	Email        InvoiceEmail
}

// RenderInvoiceHTML produces the HTML invoice document delivered by email.
func RenderInvoiceHTML(businessName string, email InvoiceEmail) (string, error) {
	var buf bytes.Buffer
	err := invoiceTemplate.Execute(&buf, invoiceTemplateData{
		BusinessName: businessName,
		Email:        email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}
