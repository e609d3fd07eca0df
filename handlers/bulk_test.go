package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"BrokerConnect/models"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubCreator resolves each row by title so a test can script per-row
// delegate outcomes without a database or SMS provider.
type stubCreator struct {
	results map[string]CreateResult
	calls   int
}

func (s *stubCreator) createListing(ctx context.Context, brokerID primitive.ObjectID, property *models.Property, images []string) CreateResult {
	s.calls++
	if result, ok := s.results[property.Title]; ok {
		return result
	}
	return CreateResult{
		OK:      true,
		Status:  http.StatusCreated,
		Message: "Property created",
		Payload: &models.PropertyResponse{Property: *property, OwnerConsent: models.OwnerConsent{SMSStatus: "sent"}},
	}
}

func uploadRequest(t *testing.T, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile error: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/properties/bulk-upload", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func bulkCSV(rows ...string) string {
	header := "title,propertyType,transactionType,price,location,fullAddress,listingType,ownerName,ownerPhone"
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

func runBulkUpload(t *testing.T, stub *stubCreator, csvContent string) models.BulkUploadSummary {
	t.Helper()

	e := echo.New()
	req, rec := uploadRequest(t, "listings.csv", csvContent)
	c := e.NewContext(req, rec)
	c.Set("broker_id", primitive.NewObjectID())

	bc := &BulkController{properties: stub}
	if err := bc.BulkUpload(c); err != nil {
		t.Fatalf("BulkUpload error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary models.BulkUploadSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	return summary
}

func TestBulkUpload_AllRowsSucceed(t *testing.T) {
	stub := &stubCreator{}
	summary := runBulkUpload(t, stub, bulkCSV(
		"Flat A,Apartment,sale,5000000,Baner,Addr A,shared,Anil,9876543210",
		"Flat B,Apartment,sale,6000000,Baner,Addr B,shared,Sunita,9876543211",
	))

	if summary.Total != 2 || summary.Successful != 2 || summary.Failed != 0 {
		t.Fatalf("expected 2/2/0, got %d/%d/%d", summary.Total, summary.Successful, summary.Failed)
	}
	if len(summary.Errors) != 0 || len(summary.Duplicates) != 0 || len(summary.SMSWarnings) != 0 {
		t.Fatalf("expected empty report slices, got %+v", summary)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 delegate calls, got %d", stub.calls)
	}
}

func TestBulkUpload_MixedOutcomes(t *testing.T) {
	stub := &stubCreator{results: map[string]CreateResult{
		"Flat C": {Status: http.StatusConflict, Message: "A listing for this owner and address already exists"},
		"Flat D": {
			OK:      true,
			Status:  http.StatusCreated,
			Message: "Property created",
			Payload: &models.PropertyResponse{OwnerConsent: models.OwnerConsent{SMSStatus: "failed", SMSError: "unreachable"}},
		},
	}}

	summary := runBulkUpload(t, stub, bulkCSV(
		"Flat A,Apartment,sale,5000000,Baner,Addr A,shared,Anil,9876543210",
		"Flat B,Apartment,sale,6000000,Baner,Addr B,shared,Sunita,",
		"Flat C,Apartment,sale,7000000,Baner,Addr C,shared,Ravi,9876543212",
		"Flat D,Apartment,sale,8000000,Baner,Addr D,shared,Meera,9876543213",
	))

	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
	if summary.Successful+summary.Failed != summary.Total {
		t.Fatalf("successful %d + failed %d != total %d", summary.Successful, summary.Failed, summary.Total)
	}
	if summary.Successful != 2 || summary.Failed != 2 {
		t.Fatalf("expected 2 successful and 2 failed, got %d/%d", summary.Successful, summary.Failed)
	}

	if len(summary.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", summary.Errors)
	}
	if !strings.HasPrefix(summary.Errors[0], "Row 2:") || !strings.Contains(summary.Errors[0], "ownerPhone") {
		t.Fatalf("expected a Row 2 ownerPhone error, got %q", summary.Errors[0])
	}
	if !strings.HasPrefix(summary.Errors[1], "Row 3:") {
		t.Fatalf("expected a Row 3 duplicate error, got %q", summary.Errors[1])
	}

	if len(summary.Duplicates) != 1 || summary.Duplicates[0].Row != 3 {
		t.Fatalf("expected duplicate entry for row 3, got %+v", summary.Duplicates)
	}

	if len(summary.SMSWarnings) != 1 {
		t.Fatalf("expected 1 sms warning, got %+v", summary.SMSWarnings)
	}
	if summary.SMSWarnings[0].Row != 4 || summary.SMSWarnings[0].Status != "failed" || summary.SMSWarnings[0].Error != "unreachable" {
		t.Fatalf("unexpected sms warning: %+v", summary.SMSWarnings[0])
	}

	// The delegate must never see the invalid row.
	if stub.calls != 3 {
		t.Fatalf("expected 3 delegate calls, got %d", stub.calls)
	}
}

func TestBulkUpload_MissingFile(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/properties/bulk-upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("broker_id", primitive.NewObjectID())

	bc := &BulkController{properties: &stubCreator{}}
	if err := bc.BulkUpload(c); err != nil {
		t.Fatalf("BulkUpload error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
