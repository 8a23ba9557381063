package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
)

type attachmentHandler struct {
	attachments portsrepo.AttachmentStore
}

func newAttachmentHandler(store portsrepo.AttachmentStore) *attachmentHandler {
	return &attachmentHandler{attachments: store}
}

// registerAttachmentRoutes registers the receipt streaming route. The
// wildcard keeps the object key's slashes intact.
func registerAttachmentRoutes(rg *gin.RouterGroup, store portsrepo.AttachmentStore) {
	h := newAttachmentHandler(store)
	rg.GET("/attachments/*key", h.getAttachment)
}

// getAttachment godoc
// @Summary Stream a stored receipt
// @Tags attachments
// @Produce octet-stream
// @Param key path string true "Attachment key"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Attachment not found"
// @Router /attachments/{key} [get]
func (h *attachmentHandler) getAttachment(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment key is required"})
		return
	}

	attachment, err := h.attachments.Retrieve(c.Request.Context(), key)
	if err != nil {
		respondServiceError(c, err, "retrieve attachment")
		return
	}
	defer attachment.Content.Close()

	c.DataFromReader(http.StatusOK, attachment.Size, attachment.ContentType, attachment.Content, nil)
}
