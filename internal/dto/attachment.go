package dto

import "io"

// ReceiptUpload carries an uploaded receipt file from the handler to the
// service. Content is read exactly once when the attachment store writes it.
type ReceiptUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
