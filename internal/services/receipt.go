package services

import (
	"context"
	"fmt"
	"log/slog"

	"fleetadmin/internal/domain"
)

// ReceiptTemplate is the template name used for payment receipts.
const ReceiptTemplate = "payment_receipt"

type receiptMailer struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewReceiptMailer returns a ReceiptNotifier that renders the receipt template and sends it with mailer.
func NewReceiptMailer(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.ReceiptNotifier {
	return &receiptMailer{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *receiptMailer) NotifyPaymentReceipt(ctx context.Context, receipt *domain.PaymentReceipt) error {
	if receipt == nil {
		return fmt.Errorf("payment receipt is nil")
	}
	if receipt.CustomerEmail == "" {
		return fmt.Errorf("payment receipt %s has no recipient", receipt.PaymentID)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(ReceiptTemplate, receipt)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", ReceiptTemplate, err)
	}
	if err := s.mailer.Send(ctx, receipt.CustomerEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send payment receipt: %w", err)
	}
	s.logger.InfoContext(ctx, "payment receipt sent", "payment_id", receipt.PaymentID, "to", receipt.CustomerEmail)
	return nil
}
