package handler

import (
	"errors"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves the driver authentication route.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Authenticate resolves the encrypted credential blob into the order
// display payload and a session token.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req struct {
		EncryptedData string `json:"encryptedData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing encrypted data")
		return
	}

	order, token, err := h.svc.Authenticate(c.Request.Context(), req.EncryptedData)
	if err != nil {
		if errors.Is(err, service.ErrAuthFailed) {
			Unauthorized(c, "Invalid order or passcode")
			return
		}
		InternalError(c, "Authentication failed")
		return
	}

	SuccessWith(c, gin.H{
		"data":  order,
		"token": token,
	})
}
