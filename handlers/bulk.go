package handlers

import (
	"BrokerConnect/bulk"
	"BrokerConnect/models"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bulkTemplateHeader is the canonical column order of the downloadable
// template. The mapper also accepts the aliases listed in bulk.MapRow.
const bulkTemplateHeader = "title,propertyType,transactionType,price,rentFrequency,size,sizeUnit,location,fullAddress,flatNumber,floorNumber,buildingSociety,description,bhk,listingType,isPubliclyVisible,ownerName,ownerPhone,commissionTerms,scopeOfWork"

// listingCreator is the per-row creation delegate. PropertyController is the
// real implementation; tests drive the loop with a stub.
type listingCreator interface {
	createListing(ctx context.Context, brokerID primitive.ObjectID, property *models.Property, images []string) CreateResult
}

type BulkController struct {
	properties listingCreator
}

func NewBulkController(properties *PropertyController) *BulkController {
	return &BulkController{properties: properties}
}

// BulkUpload processes rows strictly sequentially: map, validate, create. A
// failing row never aborts the batch; the summary is returned with HTTP 200
// whenever the file itself was readable.
func (bc *BulkController) BulkUpload(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A CSV or XLSX file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	rows, err := bulk.ReadRows(file.Filename, src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	summary := models.NewBulkUploadSummary()
	summary.Total = len(rows)

	for _, row := range rows {
		input := bulk.MapRow(row.Cells)

		property, errs := bulk.ValidateInput(input)
		if errs != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", row.Num, strings.Join(errs, "; ")))
			continue
		}

		result := bc.properties.createListing(context.Background(), brokerID, property, nil)
		if !result.OK {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", row.Num, result.Message))
			if result.Status == http.StatusConflict {
				summary.Duplicates = append(summary.Duplicates, models.DuplicateEntry{Row: row.Num, Message: result.Message})
			}
			continue
		}

		summary.Successful++
		if result.Payload != nil && result.Payload.OwnerConsent.SMSStatus != "sent" {
			summary.SMSWarnings = append(summary.SMSWarnings, models.SMSWarning{
				Row:    row.Num,
				Status: result.Payload.OwnerConsent.SMSStatus,
				Error:  result.Payload.OwnerConsent.SMSError,
			})
		}
	}

	return c.JSON(http.StatusOK, summary)
}

func (bc *BulkController) BulkTemplate(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="property-upload-template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(bulkTemplateHeader+"\n"))
}
