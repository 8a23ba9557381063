package handlers

import (
	"mime/multipart"

	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// receiptFromFileHeader opens an uploaded receipt file and wraps it for the
// service layer. The returned closer must be called after the service returns.
func receiptFromFileHeader(fh *multipart.FileHeader) (*dto.ReceiptUpload, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &dto.ReceiptUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     file,
	}
	return upload, func() { _ = file.Close() }, nil
}
