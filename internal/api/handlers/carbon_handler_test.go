package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Receipt-Carbon-Backend/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubCarbonService struct {
	uploadRes    domain.UploadCarbonResponse
	uploadErr    error
	historyRes   domain.HistoryResponse
	historyErr   error
	dashboardErr error
}

func (s *stubCarbonService) UploadReceipt(context.Context, domain.UploadCarbonRequest) (domain.UploadCarbonResponse, error) {
	return s.uploadRes, s.uploadErr
}

func (s *stubCarbonService) GetHistory(context.Context, string) (domain.HistoryResponse, error) {
	return s.historyRes, s.historyErr
}

func (s *stubCarbonService) GetDashboard(context.Context, string) (domain.DashboardResponse, error) {
	return domain.DashboardResponse{}, s.dashboardErr
}

func newTestApp(stub *stubCarbonService) *fiber.App {
	app := fiber.New()
	handler := NewCarbonHandler(stub, validator.New())
	app.Post("/api/v1/carbon/upload", handler.UploadReceipt)
	app.Get("/api/v1/carbon/history/:user_id", handler.GetHistory)
	app.Get("/api/v1/carbon/dashboard/:user_id", handler.GetDashboard)
	return app
}

func uploadRequest(t *testing.T, userID string, withFile bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if userID != "" {
		if err := writer.WriteField("user_id", userID); err != nil {
			t.Fatalf("writing field: %v", err)
		}
	}
	if withFile {
		part, err := writer.CreateFormFile("receipt", "bill.jpg")
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		part.Write([]byte("image-bytes"))
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carbon/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body
}

func TestUploadReceiptHandlerSuccess(t *testing.T) {
	stub := &stubCarbonService{uploadRes: domain.UploadCarbonResponse{
		EntryID:     uuid.NewString(),
		TotalCarbon: 12.5,
		ItemSummary: "Pongal - 2",
	}}
	app := newTestApp(stub)

	res, err := app.Test(uploadRequest(t, uuid.NewString(), true))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	body := decodeBody(t, res)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	data := body["data"].(map[string]any)
	if data["total_carbon"] != 12.5 {
		t.Errorf("total_carbon = %v", data["total_carbon"])
	}
}

func TestUploadReceiptHandlerMissingFile(t *testing.T) {
	app := newTestApp(&stubCarbonService{})

	res, err := app.Test(uploadRequest(t, uuid.NewString(), false))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestUploadReceiptHandlerMissingUserID(t *testing.T) {
	app := newTestApp(&stubCarbonService{})

	res, err := app.Test(uploadRequest(t, "", true))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestUploadReceiptHandlerUnknownUser(t *testing.T) {
	app := newTestApp(&stubCarbonService{uploadErr: domain.ErrUserNotFound})

	res, err := app.Test(uploadRequest(t, uuid.NewString(), true))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

// Internal pipeline failures come back as a uniform 500 with no cause in
// the body.
func TestUploadReceiptHandlerPipelineFailure(t *testing.T) {
	app := newTestApp(&stubCarbonService{
		uploadErr: errors.New("scoring service exploded with credentials in the message"),
	})

	res, err := app.Test(uploadRequest(t, uuid.NewString(), true))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", res.StatusCode)
	}

	body := decodeBody(t, res)
	if _, leaked := body["error"]; leaked {
		t.Errorf("internal cause leaked to the client: %v", body["error"])
	}
}

func TestGetHistoryHandler(t *testing.T) {
	stub := &stubCarbonService{historyRes: domain.HistoryResponse{
		Entries: []domain.CarbonEntryResponse{{ID: uuid.NewString(), TotalCarbon: 3}},
	}}
	app := newTestApp(stub)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/carbon/history/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
}

func TestGetHistoryHandlerUnknownUser(t *testing.T) {
	app := newTestApp(&stubCarbonService{historyErr: domain.ErrUserNotFound})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/carbon/history/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestGetDashboardHandlerUnknownUser(t *testing.T) {
	app := newTestApp(&stubCarbonService{dashboardErr: domain.ErrUserNotFound})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/carbon/dashboard/"+uuid.NewString(), nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}
