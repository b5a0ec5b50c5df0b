package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves the read side: truck listings, stage status, the
// per-stage artifact read-back and the workbook export.
type StatusHandler struct {
	svc      *service.StatusService
	ewayBill *service.EwayBillService
}

func NewStatusHandler(svc *service.StatusService, ewayBill *service.EwayBillService) *StatusHandler {
	return &StatusHandler{svc: svc, ewayBill: ewayBill}
}

// queryKey reads the composite identity from query params.
func queryKey(c *gin.Context) (entity.TruckKey, bool) {
	orderID := c.Query("orderid")
	truckNo := c.Query("temp_truckno")
	if orderID == "" || truckNo == "" {
		return entity.TruckKey{}, false
	}
	transporterID, _ := strconv.Atoi(c.Query("transporterid"))
	return entity.TruckKey{
		OrderID:       orderID,
		TempTruckNo:   truckNo,
		TransporterID: transporterID,
	}, true
}

// ListTrucks returns every truck registered under an order.
func (h *StatusHandler) ListTrucks(c *gin.Context) {
	orderID := c.Query("orderid")
	if orderID == "" {
		BadRequest(c, "Missing required fields")
		return
	}
	transporterID, _ := strconv.Atoi(c.Query("transporterid"))

	trucks, err := h.svc.ListTrucks(c.Request.Context(), orderID, transporterID)
	if err != nil {
		InternalError(c, "Failed to fetch trucks")
		return
	}
	SuccessWith(c, gin.H{"trucks": trucks})
}

// DocStatus reports the stage completion flags for one truck.
func (h *StatusHandler) DocStatus(c *gin.Context) {
	key, ok := queryKey(c)
	if !ok {
		BadRequest(c, "Missing required fields")
		return
	}

	st, err := h.svc.GetDocStatus(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Failure(c, "No docstatus found")
			return
		}
		InternalError(c, "Failed to fetch docstatus")
		return
	}
	SuccessWith(c, gin.H{"docstatus": []*service.DocStatus{st}})
}

// GetPermitData returns the permit stage read-back.
func (h *StatusHandler) GetPermitData(c *gin.Context) {
	key, ok := queryKey(c)
	if !ok {
		BadRequest(c, "Missing required fields")
		return
	}

	data, err := h.svc.GetPermitData(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Failure(c, "No permit data found")
			return
		}
		InternalError(c, "Failed to fetch permit data")
		return
	}
	Success(c, data)
}

// GetLorryData returns the transport receipt read-back.
func (h *StatusHandler) GetLorryData(c *gin.Context) {
	key, ok := queryKey(c)
	if !ok {
		BadRequest(c, "Missing required fields")
		return
	}

	data, err := h.svc.GetLorryData(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Failure(c, "No lorry data found")
			return
		}
		InternalError(c, "Failed to fetch lorry data")
		return
	}
	Success(c, data)
}

// GetChallanData returns the weighbridge challan read-back.
func (h *StatusHandler) GetChallanData(c *gin.Context) {
	key, ok := queryKey(c)
	if !ok {
		BadRequest(c, "Missing required fields")
		return
	}

	data, err := h.svc.GetChallanData(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Failure(c, "No challan data found")
			return
		}
		InternalError(c, "Failed to fetch challan data")
		return
	}
	Success(c, data)
}

// GetFactoryData returns the factory gate read-back.
func (h *StatusHandler) GetFactoryData(c *gin.Context) {
	key, ok := queryKey(c)
	if !ok {
		BadRequest(c, "Missing required fields")
		return
	}

	data, err := h.svc.GetFactoryData(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Failure(c, "No factory data found")
			return
		}
		InternalError(c, "Failed to fetch factory data")
		return
	}
	Success(c, data)
}

// ExportTrucks streams an xlsx listing of the order's trucks.
func (h *StatusHandler) ExportTrucks(c *gin.Context) {
	orderID := c.Query("orderid")
	if orderID == "" {
		BadRequest(c, "Missing required fields")
		return
	}
	transporterID, _ := strconv.Atoi(c.Query("transporterid"))

	f, err := h.svc.ExportTrucks(c.Request.Context(), orderID, transporterID)
	if err != nil {
		InternalError(c, "Failed to export trucks")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename(orderID)))
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// GetEwayBill returns the e-way bill template image.
func (h *StatusHandler) GetEwayBill(c *gin.Context) {
	encoded, err := h.ewayBill.Get(c.Request.Context())
	if err != nil {
		InternalError(c, "Failed to load bill image")
		return
	}
	SuccessWith(c, gin.H{"Billimage": encoded})
}
