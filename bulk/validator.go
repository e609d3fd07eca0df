package bulk

import (
	"fmt"
	"strconv"
	"strings"

	"BrokerConnect/models"
	"BrokerConnect/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// record mirrors the required/enum constraints of the property schema. Field
// order fixes the order of reported errors.
type record struct {
	Title           string `validate:"required"`
	PropertyType    string `validate:"required"`
	TransactionType string `validate:"required,oneof=sale rent"`
	Price           string `validate:"required"`
	RentFrequency   string `validate:"omitempty,oneof=monthly yearly"`
	SizeUnit        string `validate:"omitempty,oneof=sq.ft sq.m sq.yd acre"`
	Location        string `validate:"required"`
	FullAddress     string `validate:"required"`
	ListingType     string `validate:"required,oneof=exclusive colisting shared"`
	OwnerName       string `validate:"required"`
	OwnerPhone      string `validate:"required"`
}

// ValidateInput checks a mapped row against the property schema and returns
// either a typed property (not yet persisted: no ids, token or timestamps) or
// the ordered list of field-level error messages. Deterministic, no I/O.
func ValidateInput(in models.PropertyInput) (*models.Property, []string) {
	var errs []string

	rec := record{
		Title:           in.Title,
		PropertyType:    in.PropertyType,
		TransactionType: in.TransactionType,
		Price:           in.Price,
		RentFrequency:   in.RentFrequency,
		SizeUnit:        in.SizeUnit,
		Location:        in.Location,
		FullAddress:     in.FullAddress,
		ListingType:     in.ListingType,
		OwnerName:       in.OwnerName,
		OwnerPhone:      in.OwnerPhone,
	}

	if err := validate.Struct(rec); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, []string{err.Error()}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	bhk := 0
	if in.BHK != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(in.BHK))
		if err != nil || parsed < 0 {
			errs = append(errs, "bhk must be a non-negative integer")
		} else {
			bhk = parsed
		}
	}

	size := strings.TrimSpace(in.Size)
	if size != "" {
		if _, err := strconv.ParseFloat(strings.ReplaceAll(size, ",", ""), 64); err != nil {
			errs = append(errs, "size must be numeric")
		}
	}

	ownerPhone := utils.NormalizePhone(in.OwnerPhone)
	if in.OwnerPhone != "" && ownerPhone == "" {
		errs = append(errs, "ownerPhone must contain digits")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	rentFrequency := in.RentFrequency
	if in.TransactionType != models.TransactionRent {
		rentFrequency = ""
	}

	visible := in.ListingType != models.ListingExclusive
	if in.IsPubliclyVisible != nil {
		visible = *in.IsPubliclyVisible
	}

	return &models.Property{
		Title:             in.Title,
		PropertyType:      in.PropertyType,
		TransactionType:   in.TransactionType,
		Price:             in.Price,
		RentFrequency:     rentFrequency,
		Size:              size,
		SizeUnit:          in.SizeUnit,
		Location:          in.Location,
		FullAddress:       in.FullAddress,
		FlatNumber:        in.FlatNumber,
		FloorNumber:       in.FloorNumber,
		BuildingSociety:   in.BuildingSociety,
		Description:       in.Description,
		BHK:               bhk,
		ListingType:       in.ListingType,
		IsPubliclyVisible: visible,
		OwnerName:         in.OwnerName,
		OwnerPhone:        ownerPhone,
		CommissionTerms:   in.CommissionTerms,
		ScopeOfWork:       in.ScopeOfWork,
		ApprovalStatus:    models.ApprovalPending,
	}, nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
