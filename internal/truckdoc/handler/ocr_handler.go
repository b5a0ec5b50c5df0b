package handler

import (
	"errors"

	"github.com/Akshaypro1/wclapi/internal/shared/artifact"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/gin-gonic/gin"
)

// OCRHandler forwards scanned documents to the text recognition service.
type OCRHandler struct {
	recognizer service.Recognizer
}

func NewOCRHandler(recognizer service.Recognizer) *OCRHandler {
	return &OCRHandler{recognizer: recognizer}
}

// Recognize extracts text from an uploaded scan.
func (h *OCRHandler) Recognize(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing image data")
		return
	}

	if h.recognizer == nil {
		Failure(c, "OCR is not configured")
		return
	}

	data, err := artifact.Decode(req.Image)
	if err != nil {
		BadRequest(c, "Invalid image data")
		return
	}

	text, err := h.recognizer.Recognize(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrOCRUnavailable) {
			InternalError(c, "OCR service unavailable")
			return
		}
		InternalError(c, "Failed to recognize text")
		return
	}
	SuccessWith(c, gin.H{"text": text})
}
