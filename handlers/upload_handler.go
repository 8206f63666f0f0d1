package handlers

import (
	"errors"
	"net/http"

	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/models"
	"inkwell-cms/services"

	"github.com/gin-gonic/gin"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	ingestService services.IngestService
	maxBytes      int64
	Helper        *helper.HTTPHelper
}

func NewUploadHandler(ingestService services.IngestService, maxBytes int64, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{ingestService: ingestService, maxBytes: maxBytes, Helper: h}
}

// Upload converts the multipart "file" field and returns the HTML preview.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Helper.SendDomainError(c, models.ValidationError("file too large"))
			return
		}
		h.Helper.SendDomainError(c, models.ValidationError("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.Helper.SendDomainError(c, models.IOError("could not read upload", err))
		return
	}
	defer file.Close()

	res, err := h.ingestService.Upload(c.Request.Context(), middleware.ActorFrom(c), file, header.Filename)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document converted", res)
}
