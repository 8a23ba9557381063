package services

import (
	"context"
	"log/slog"
	"path"

	"github.com/google/uuid"

	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// storeReceipt writes an uploaded receipt to the attachment store under a
// fresh key and returns that key. A store failure aborts the owning mutation.
func storeReceipt(ctx context.Context, store portsrepo.AttachmentStore, upload *dto.ReceiptUpload) (string, error) {
	key := "receipts/" + uuid.NewString() + path.Ext(upload.Filename)
	if err := store.Store(ctx, key, upload.ContentType, upload.Size, upload.Content); err != nil {
		return "", err
	}
	return key, nil
}

// discardReceipt removes an orphaned receipt after its owning transaction
// rolled back. Best-effort: a failure only logs.
func discardReceipt(ctx context.Context, store portsrepo.AttachmentStore, key string, logger *slog.Logger) {
	if key == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		logger.Warn("Failed to remove orphaned receipt", slog.String("key", key), slog.String("error", err.Error()))
	}
}
