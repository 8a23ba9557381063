package mapping

import (
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/models"
)

// ToModelIncomeEntry converts a domain IncomeEntry to a model IncomeEntry
func ToModelIncomeEntry(d domain.IncomeEntry) models.IncomeEntry {
	return models.IncomeEntry{
		IncomeID:    d.IncomeID,
		Amount:      d.Amount,
		Source:      string(d.Source),
		ReferenceID: d.ReferenceID,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncomeEntry converts a model IncomeEntry to a domain IncomeEntry
func ToDomainIncomeEntry(m models.IncomeEntry) domain.IncomeEntry {
	return domain.IncomeEntry{
		IncomeID:    m.IncomeID,
		Amount:      m.Amount,
		Source:      domain.IncomeSource(m.Source),
		ReferenceID: m.ReferenceID,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainIncomeEntrySlice converts a slice of model IncomeEntries to domain IncomeEntries
func ToDomainIncomeEntrySlice(ms []models.IncomeEntry) []domain.IncomeEntry {
	ds := make([]domain.IncomeEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIncomeEntry(m)
	}
	return ds
}

// ToModelActivity converts a domain Activity to a model Activity
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID:  d.ActivityID,
		Kind:        string(d.Kind),
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainActivity converts a model Activity to a domain Activity
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:  m.ActivityID,
		Kind:        domain.ActivityKind(m.Kind),
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainActivitySlice converts a slice of model Activities to domain Activities
func ToDomainActivitySlice(ms []models.Activity) []domain.Activity {
	ds := make([]domain.Activity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}
