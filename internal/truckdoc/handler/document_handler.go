package handler

import (
	"errors"

	"github.com/Akshaypro1/wclapi/internal/shared/artifact"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/gin-gonic/gin"
)

// truckIdentity is the composite key every stage request carries. JSON
// matching is case-insensitive, which absorbs the client's mixed casing.
type truckIdentity struct {
	OrderID       string `json:"orderid" binding:"required"`
	TempTruckNo   string `json:"temp_truckno" binding:"required"`
	TransporterID int    `json:"transporterid"`
}

func (t truckIdentity) key() entity.TruckKey {
	return entity.TruckKey{
		OrderID:       t.OrderID,
		TempTruckNo:   t.TempTruckNo,
		TransporterID: t.TransporterID,
	}
}

// DocumentHandler serves the stage document upload and correction routes.
type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// respondStageError maps service errors onto the wire contract. An absent
// record is a soft failure; malformed input is a 400; everything else is a
// storage error.
func respondStageError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		BadRequest(c, "Missing required fields")
	case errors.Is(err, artifact.ErrMalformed):
		BadRequest(c, "Invalid image data")
	case errors.Is(err, repository.ErrNotFound):
		Failure(c, notFoundMsg)
	default:
		InternalError(c, "Failed to update")
	}
}

// UploadPermit stores the permit scan, creating the truck record on first
// contact.
func (h *DocumentHandler) UploadPermit(c *gin.Context) {
	var req struct {
		truckIdentity
		PermitReceipt string `json:"permit_receipt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	id, err := h.svc.SubmitPermit(c.Request.Context(), req.key(), req.PermitReceipt)
	if err != nil {
		respondStageError(c, err, "Failed to upload")
		return
	}
	SuccessWith(c, gin.H{"id": id, "data": "Successfully uploaded"})
}

// AddPermitNo attaches the permit metadata after the scan upload.
func (h *DocumentHandler) AddPermitNo(c *gin.Context) {
	var req struct {
		truckIdentity
		PermitNo    string   `json:"permitno" binding:"required"`
		TransportNo string   `json:"transportno"`
		NetWeight   *float64 `json:"Net_weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	err := h.svc.AttachPermitDetails(c.Request.Context(), req.key(), service.PermitDetails{
		PermitNo:    req.PermitNo,
		TransportNo: req.TransportNo,
		NetWeight:   req.NetWeight,
	})
	if err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Permit details updated"})
}

// UploadLRReceipt stores the transport receipt scan.
func (h *DocumentHandler) UploadLRReceipt(c *gin.Context) {
	var req struct {
		truckIdentity
		LorryImage string `json:"lorryimage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.SubmitLorryReceipt(c.Request.Context(), req.key(), req.LorryImage); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	Success(c, "Lorry receipt uploaded")
}

// UploadChallan stores the weighbridge challan scan.
func (h *DocumentHandler) UploadChallan(c *gin.Context) {
	var req struct {
		truckIdentity
		WCLChallan string `json:"wclchallan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.SubmitChallan(c.Request.Context(), req.key(), req.WCLChallan); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	Success(c, "Challan uploaded")
}

// LRAtFactory stores the factory gate scans. The back image is optional.
func (h *DocumentHandler) LRAtFactory(c *gin.Context) {
	var req struct {
		truckIdentity
		Front string `json:"LRatfactory" binding:"required"`
		Back  string `json:"LRatfactoryback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.SubmitFactoryReceipt(c.Request.Context(), req.key(), req.Front, req.Back); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	Success(c, "Factory receipt uploaded")
}

// UpdateFrontLorry replaces the factory front scan.
func (h *DocumentHandler) UpdateFrontLorry(c *gin.Context) {
	var req struct {
		truckIdentity
		Front string `json:"LRatfactory" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.UpdateFactoryFront(c.Request.Context(), req.key(), req.Front); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Front image updated"})
}

// UpdateBackLorry replaces the factory back scan.
func (h *DocumentHandler) UpdateBackLorry(c *gin.Context) {
	var req struct {
		truckIdentity
		Back string `json:"LRatfactoryback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.UpdateFactoryBack(c.Request.Context(), req.key(), req.Back); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Back image updated"})
}

// UpdatePermitReceipt replaces the permit scan on an existing record.
func (h *DocumentHandler) UpdatePermitReceipt(c *gin.Context) {
	var req struct {
		truckIdentity
		PermitReceipt string `json:"permit_receipt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	if err := h.svc.UpdatePermitReceipt(c.Request.Context(), req.key(), req.PermitReceipt); err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Permit receipt updated"})
}

// UpdateLorryData writes the transport receipt metadata.
func (h *DocumentHandler) UpdateLorryData(c *gin.Context) {
	var req struct {
		truckIdentity
		LRNo            string   `json:"LRNO"`
		LRReceiptNo     string   `json:"LRreceiptno"`
		ProcurementDate string   `json:"procurementdate"`
		Grade           string   `json:"Grade"`
		NetWeight       *float64 `json:"Net_weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	err := h.svc.UpdateLorryData(c.Request.Context(), req.key(), service.LorryData{
		LRNo:        req.LRNo,
		LRReceiptNo: req.LRReceiptNo,
		Date:        req.ProcurementDate,
		Grade:       req.Grade,
		NetWeight:   req.NetWeight,
	})
	if err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Lorry data updated"})
}

// UpdateChallanData writes the challan number and quantity breakdown.
func (h *DocumentHandler) UpdateChallanData(c *gin.Context) {
	var req struct {
		truckIdentity
		ChallanNo      string   `json:"dchallano"`
		GrossQty       *float64 `json:"grossqty"`
		TareQty        *float64 `json:"tareqty"`
		NetQty         *float64 `json:"netqty"`
		DOQty          *float64 `json:"Doqty"`
		BalanceQty     *float64 `json:"Balanceqty"`
		ProgressiveQty *float64 `json:"progressiveqty"`
		BasePrice      *float64 `json:"Baseprice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	err := h.svc.UpdateChallanData(c.Request.Context(), req.key(), service.ChallanData{
		ChallanNo:      req.ChallanNo,
		GrossQty:       req.GrossQty,
		TareQty:        req.TareQty,
		NetQty:         req.NetQty,
		DOQty:          req.DOQty,
		BalanceQty:     req.BalanceQty,
		ProgressiveQty: req.ProgressiveQty,
		BasePrice:      req.BasePrice,
	})
	if err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Challan data updated"})
}

// RevisedLorryData writes the factory-side corrections: receipt fields plus
// the factory date and the net weight measured at the factory gate.
func (h *DocumentHandler) RevisedLorryData(c *gin.Context) {
	var req struct {
		truckIdentity
		LRNo               string   `json:"LRNO"`
		LRReceiptNo        string   `json:"LRreceiptno"`
		Date               string   `json:"date"`
		Grade              string   `json:"Grade"`
		NetWeightAtFactory *float64 `json:"netwetatfactory"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Missing required fields")
		return
	}

	err := h.svc.UpdateRevisedLorryData(c.Request.Context(), req.key(), service.LorryData{
		LRNo:        req.LRNo,
		LRReceiptNo: req.LRReceiptNo,
		Date:        req.Date,
		Grade:       req.Grade,
		NetWeight:   req.NetWeightAtFactory,
	})
	if err != nil {
		respondStageError(c, err, "No record found to update")
		return
	}
	SuccessWith(c, gin.H{"message": "Lorry data updated"})
}
