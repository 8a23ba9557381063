package mapping

import (
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/models"
)

// ToModelReceivable converts a domain Receivable to a model Receivable
func ToModelReceivable(d domain.Receivable) models.Receivable {
	return models.Receivable{
		ReceivableID: d.ReceivableID,
		CustomerID:   d.CustomerID,
		Amount:       d.Amount,
		PaidAmount:   d.PaidAmount,
		DueDate:      d.DueDate,
		Description:  d.Description,
		Notes:        d.Notes,
		Status:       models.ReceivableStatus(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivable converts a model Receivable to a domain Receivable
func ToDomainReceivable(m models.Receivable) domain.Receivable {
	return domain.Receivable{
		ReceivableID: m.ReceivableID,
		CustomerID:   m.CustomerID,
		Amount:       m.Amount,
		PaidAmount:   m.PaidAmount,
		DueDate:      m.DueDate,
		Description:  m.Description,
		Notes:        m.Notes,
		Status:       domain.ReceivableStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReceivableSlice converts a slice of model Receivables to domain Receivables
func ToDomainReceivableSlice(ms []models.Receivable) []domain.Receivable {
	ds := make([]domain.Receivable, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceivable(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		ReceivableID:   d.ReceivableID,
		Amount:         d.Amount,
		ReceiptKey:     d.ReceiptKey,
		IdempotencyKey: d.IdempotencyKey,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		ReceivableID:   m.ReceivableID,
		Amount:         m.Amount,
		ReceiptKey:     m.ReceiptKey,
		IdempotencyKey: m.IdempotencyKey,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
