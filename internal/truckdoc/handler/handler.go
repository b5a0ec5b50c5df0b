package handler

import (
	"net/http"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/gin-gonic/gin"
)

// Handlers is the HTTP layer for the truck document API.
type Handlers struct {
	Document *DocumentHandler
	Status   *StatusHandler
	Auth     *AuthHandler
	OCR      *OCRHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(svc.Document),
		Status:   NewStatusHandler(svc.Status, svc.EwayBill),
		Auth:     NewAuthHandler(svc.Auth),
		OCR:      NewOCRHandler(svc.OCR),
	}
}

// Success responds with the standard success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWith responds 200 with success:true plus caller-chosen fields.
// Used where the client expects a field other than "data".
func SuccessWith(c *gin.Context, fields gin.H) {
	payload := gin.H{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

// Failure is the soft-failure envelope: HTTP 200 with success:false. Used
// for empty results and absent records, which are outcomes rather than
// errors.
func Failure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"message": message,
	})
}

// BadRequest rejects a malformed or incomplete request.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// Unauthorized rejects a failed authentication.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// InternalError reports a storage or downstream failure.
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
	})
}
