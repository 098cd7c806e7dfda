package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/services"
)

func testOptimizeHandler() *OptimizeHandler {
	return &OptimizeHandler{
		Optimizer: &services.Optimizer{Log: logger.New("error")},
		Log:       logger.New("error"),
	}
}

const optimizeBody = `{
	"depot": {"id": "depot", "name": "Warehouse", "latitude": 40.0, "longitude": -75.0},
	"deliveries": [
		{"id": "d1", "name": "Alice", "latitude": 40.1, "longitude": -75.0, "demand": 2},
		{"id": "d2", "name": "Bob", "latitude": 40.2, "longitude": -75.0}
	],
	"vehicles": [
		{"id": "v1", "name": "Truck", "capacity": 10}
	],
	"objective": "minimize_distance",
	"cost_per_mile": 0.65,
	"cost_per_hour": 22.0
}`

func TestOptimizeEndToEnd(t *testing.T) {
	h := testOptimizeHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader(optimizeBody))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success {
		t.Error("success = false")
	}
	if len(res.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(res.Routes))
	}
	if got := len(res.Routes[0].Stops); got != 2 {
		t.Errorf("stops = %d, want 2", got)
	}
	if res.Costs == nil || res.Costs.TotalCost <= 0 {
		t.Errorf("costs = %+v", res.Costs)
	}
	if res.Comparison == nil || res.Comparison.SingleVehicleStatus != "unavailable" {
		t.Errorf("comparison = %+v", res.Comparison)
	}
	if res.ReportID != "" {
		t.Errorf("report id set without a repository: %q", res.ReportID)
	}
}

func TestOptimizeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"depot":`},
		{"unknown field", `{"depot": {}, "bogus": 1}`},
		{"trailing object", `{"depot": {"latitude": 1, "longitude": 1}} {}`},
		{"no deliveries", `{"depot": {"latitude": 1, "longitude": 1}, "deliveries": [], "vehicles": [{}]}`},
		{"bad objective", `{"depot": {"latitude": 1, "longitude": 1}, "deliveries": [{"latitude": 1, "longitude": 1}], "vehicles": [{}], "objective": "warp_speed"}`},
	}

	h := testOptimizeHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Optimize(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestOptimizeMethodNotAllowed(t *testing.T) {
	h := testOptimizeHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/optimize", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q", got)
	}
}

func quickForm(t *testing.T, fields map[string]string, csvData string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if csvData != "" {
		part, err := mw.CreateFormFile("file", "deliveries.csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte(csvData))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestQuickOptimizeUploadsAndRuns(t *testing.T) {
	h := testOptimizeHandler()

	body, contentType := quickForm(t, map[string]string{
		"depot_lat":     "40.0",
		"depot_lon":     "-75.0",
		"vehicle_count": "2",
	}, "latitude,longitude\n40.1,-75.0\n40.2,-75.0\n40.3,-75.0\n")

	req := httptest.NewRequest(http.MethodPost, "/api/optimize/quick", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.QuickOptimize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	assigned := 0
	for _, r := range res.Routes {
		assigned += len(r.Stops)
	}
	if assigned+len(res.UnassignedDeliveries) != 3 {
		t.Errorf("assigned %d + unassigned %d != 3", assigned, len(res.UnassignedDeliveries))
	}
}

func TestQuickOptimizeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		csv    string
	}{
		{"missing depot", map[string]string{}, "latitude,longitude\n40.1,-75.0\n"},
		{"missing file", map[string]string{"depot_lat": "40.0", "depot_lon": "-75.0"}, ""},
		{"bad vehicle count", map[string]string{"depot_lat": "40.0", "depot_lon": "-75.0", "vehicle_count": "0"}, "latitude,longitude\n40.1,-75.0\n"},
		{"bad objective", map[string]string{"depot_lat": "40.0", "depot_lon": "-75.0", "objective": "warp_speed"}, "latitude,longitude\n40.1,-75.0\n"},
	}

	h := testOptimizeHandler()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := quickForm(t, tc.fields, tc.csv)
			req := httptest.NewRequest(http.MethodPost, "/api/optimize/quick", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			h.QuickOptimize(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUploadParsesCSV(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "deliveries.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("name,latitude,longitude,demand\nAlice,40.1,-75.0,2\nBob,40.2,-75.0,1\n"))
	mw.Close()

	h := &UploadHandler{Log: logger.New("error")}
	req := httptest.NewRequest(http.MethodPost, "/api/deliveries/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Count != 2 || len(res.Deliveries) != 2 {
		t.Fatalf("count = %d, deliveries = %d", res.Count, len(res.Deliveries))
	}
	if res.Deliveries[0].Name != "Alice" || *res.Deliveries[0].Demand != 2 {
		t.Errorf("first delivery = %+v", res.Deliveries[0])
	}
}

func TestSampleDataFeedsOptimize(t *testing.T) {
	sampleHandler := &SampleDataHandler{Log: logger.New("error")}

	req := httptest.NewRequest(http.MethodGet, "/api/sample-data", nil)
	rec := httptest.NewRecorder()
	sampleHandler.Sample(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("sample status = %d", rec.Code)
	}

	// The sample payload must be accepted verbatim by the optimize endpoint.
	h := testOptimizeHandler()
	optReq := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewReader(rec.Body.Bytes()))
	optRec := httptest.NewRecorder()
	h.Optimize(optRec, optReq)

	if optRec.Code != http.StatusOK {
		t.Fatalf("optimize status = %d, body = %s", optRec.Code, optRec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{Log: logger.New("error")}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
