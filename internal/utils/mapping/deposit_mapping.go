package mapping

import (
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/models"
)

// ToModelDeposit converts a domain Deposit to a model Deposit
func ToModelDeposit(d domain.Deposit) models.Deposit {
	return models.Deposit{
		DepositID:   d.DepositID,
		CustomerID:  d.CustomerID,
		Amount:      d.Amount,
		TotalAmount: d.TotalAmount,
		Description: d.Description,
		Status:      models.DepositStatus(d.Status),
		ReceiptKey:  d.ReceiptKey,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeposit converts a model Deposit to a domain Deposit
func ToDomainDeposit(m models.Deposit) domain.Deposit {
	return domain.Deposit{
		DepositID:   m.DepositID,
		CustomerID:  m.CustomerID,
		Amount:      m.Amount,
		TotalAmount: m.TotalAmount,
		Description: m.Description,
		Status:      domain.DepositStatus(m.Status),
		ReceiptKey:  m.ReceiptKey,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDepositSlice converts a slice of model Deposits to domain Deposits
func ToDomainDepositSlice(ms []models.Deposit) []domain.Deposit {
	ds := make([]domain.Deposit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDeposit(m)
	}
	return ds
}
