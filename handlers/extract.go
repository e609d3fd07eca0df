package handlers

import (
	"BrokerConnect/config"
	"BrokerConnect/extract"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type ExtractController struct {
	extractor extract.Extractor
}

func NewExtractController(extractor extract.Extractor) *ExtractController {
	return &ExtractController{extractor: extractor}
}

// ExtractListing turns a pasted freeform listing description into prefilled
// property form fields.
func (ec *ExtractController) ExtractListing(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Text is required"})
	}

	fields, err := ec.extractor.ExtractListing(c.Request().Context(), req.Text)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "ExtractListing", "extract listing fields", nil, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to extract listing fields"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"fields": fields})
}
