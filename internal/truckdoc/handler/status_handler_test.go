package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/service"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupStatusTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	statusSvc := service.NewStatusService(repos.Truck, nil, 0, zap.NewNop())
	statusHandler := NewStatusHandler(statusSvc, nil)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "")

	api.GET("/Gettrucknos", statusHandler.ListTrucks)
	api.GET("/docstatus", statusHandler.DocStatus)
	api.GET("/getPermitData", statusHandler.GetPermitData)
	api.GET("/getLorryData", statusHandler.GetLorryData)
	api.GET("/getChallanData", statusHandler.GetChallanData)
	api.GET("/getFactoryData", statusHandler.GetFactoryData)
	api.GET("/exporttrucks", statusHandler.ExportTrucks)

	return router, db
}

func TestDocStatusReportsStageFlags(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID:          "ORD-1001",
		TempTruckNo:      "TMP-42",
		TransporterID:    7,
		IsPermitUploaded: true,
	})

	w := testutil.DoRequest(router, "GET",
		"/docstatus?orderid=ORD-1001&temp_truckno=TMP-42&transporterid=7", nil, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != true {
		t.Fatalf("expected success, got %v", resp)
	}
	statuses, ok := resp["docstatus"].([]interface{})
	if !ok || len(statuses) != 1 {
		t.Fatalf("expected one docstatus entry, got %v", resp["docstatus"])
	}
	st := statuses[0].(map[string]interface{})
	if st["is_permit_uploaded"] != true {
		t.Error("permit flag should be true")
	}
	if st["is_lorry_uploaded"] != false || st["is_wclchallan_uploaded"] != false || st["is_LRatfactory_uploaded"] != false {
		t.Errorf("remaining flags should be false: %v", st)
	}
}

func TestDocStatusForUnknownTruck(t *testing.T) {
	router, _ := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET",
		"/docstatus?orderid=ORD-NOPE&temp_truckno=TMP-0&transporterid=7", nil, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 soft failure, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != false {
		t.Fatalf("expected success:false, got %v", resp)
	}
	if resp["message"] != "No docstatus found" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestListTrucksReturnsAllForOrder(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID: "ORD-1001", TempTruckNo: "TMP-1", TransporterID: 7,
		IsPermitUploaded: true, AllUploaded: true,
	})
	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID: "ORD-1001", TempTruckNo: "TMP-2", TransporterID: 7,
		IsPermitUploaded: true,
	})
	// other order, must not leak in
	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID: "ORD-2002", TempTruckNo: "TMP-3", TransporterID: 7,
	})

	w := testutil.DoRequest(router, "GET", "/Gettrucknos?orderid=ORD-1001&transporterid=7", nil, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	trucks, ok := resp["trucks"].([]interface{})
	if !ok {
		t.Fatalf("expected trucks array, got %v", resp)
	}
	if len(trucks) != 2 {
		t.Fatalf("expected 2 trucks, got %d", len(trucks))
	}
	first := trucks[0].(map[string]interface{})
	if _, ok := first["temp_truckno"]; !ok {
		t.Errorf("truck entry missing temp_truckno: %v", first)
	}
}

func TestListTrucksEmptyOrderIsSuccess(t *testing.T) {
	router, _ := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET", "/Gettrucknos?orderid=ORD-EMPTY&transporterid=7", nil, token)

	resp := testutil.ParseResponse(w)
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("empty listing must be success, got %d %v", w.Code, resp)
	}
	trucks, ok := resp["trucks"].([]interface{})
	if !ok || len(trucks) != 0 {
		t.Errorf("expected empty trucks array, got %v", resp["trucks"])
	}
}

func TestGetPermitDataReturnsDataURL(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	weight := 33.1
	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID:          "ORD-1001",
		TempTruckNo:      "TMP-42",
		TransporterID:    7,
		IsPermitUploaded: true,
		PermitNo:         "PRM-77",
		TransportNo:      "TRN-12",
		NetWeight:        &weight,
		PermitReceipt:    []byte("\x89PNG scan bytes"),
	})

	w := testutil.DoRequest(router, "GET",
		"/getPermitData?orderid=ORD-1001&temp_truckno=TMP-42&transporterid=7", nil, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	rows, ok := resp["data"].([]interface{})
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one permit row, got %v", resp["data"])
	}
	row := rows[0].(map[string]interface{})
	if row["permitno"] != "PRM-77" {
		t.Errorf("permit no mismatch: %v", row["permitno"])
	}
	receipt, _ := row["permit_receipt"].(string)
	if !strings.HasPrefix(receipt, "data:image/png;base64,") {
		t.Errorf("expected PNG data URL, got %q", receipt)
	}
}

func TestGetLorryDataFormatsDate(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID:         "ORD-1001",
		TempTruckNo:     "TMP-42",
		TransporterID:   7,
		LRNo:            "LR-5",
		ProcurementDate: &date,
		LorryReceipt:    []byte("scan"),
	})

	w := testutil.DoRequest(router, "GET",
		"/getLorryData?orderid=ORD-1001&temp_truckno=TMP-42&transporterid=7", nil, token)

	resp := testutil.ParseResponse(w)
	rows, ok := resp["data"].([]interface{})
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one lorry row, got %v", resp)
	}
	row := rows[0].(map[string]interface{})
	if row["procurementdate"] != "15-06-2025" {
		t.Errorf("expected day-first date, got %v", row["procurementdate"])
	}
}

func TestGetFactoryDataIncludesBothScans(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID:            "ORD-1001",
		TempTruckNo:        "TMP-42",
		TransporterID:      7,
		FactoryReceipt:     []byte("front"),
		FactoryReceiptBack: []byte("back"),
	})

	w := testutil.DoRequest(router, "GET",
		"/getFactoryData?orderid=ORD-1001&temp_truckno=TMP-42&transporterid=7", nil, token)

	resp := testutil.ParseResponse(w)
	rows, ok := resp["data"].([]interface{})
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one factory row, got %v", resp)
	}
	row := rows[0].(map[string]interface{})
	front, _ := row["LRatfactory"].(string)
	back, _ := row["LRatfactoryback"].(string)
	if !strings.HasPrefix(front, "data:image/png;base64,") {
		t.Errorf("front scan missing: %q", front)
	}
	if !strings.HasPrefix(back, "data:image/png;base64,") {
		t.Errorf("back scan missing: %q", back)
	}
}

func TestGetChallanDataForUnknownTruck(t *testing.T) {
	router, _ := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "GET",
		"/getChallanData?orderid=ORD-NOPE&temp_truckno=TMP-0&transporterid=7", nil, token)

	resp := testutil.ParseResponse(w)
	if w.Code != http.StatusOK || resp["success"] != false {
		t.Fatalf("expected soft failure, got %d %v", w.Code, resp)
	}
}

func TestExportTrucksStreamsWorkbook(t *testing.T) {
	router, db := setupStatusTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTruck(t, db, &entity.TruckDocument{
		OrderID: "ORD-1001", TempTruckNo: "TMP-1", TransporterID: 7,
		IsPermitUploaded: true,
	})

	w := testutil.DoRequest(router, "GET", "/exporttrucks?orderid=ORD-1001&transporterid=7", nil, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("workbook body is empty")
	}
}
