package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PaymentReceipt holds the data for a payment receipt email.
type PaymentReceipt struct {
	PaymentID      string `json:"payment_id"`
	ContractNumber string `json:"contract_number"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	PaidAt         string `json:"paid_at"`
}

// ReceiptNotifier delivers payment receipts, either directly or through a queue.
type ReceiptNotifier interface {
	NotifyPaymentReceipt(ctx context.Context, receipt *PaymentReceipt) error
}
