package bulk

import (
	"encoding/json"
	"strings"

	"BrokerConnect/models"
)

// fieldAliases lists the accepted column headers per canonical field, in
// lookup order. Headers are matched after lowercasing and trimming, so
// "Property Type", "propertyType" and "property_type" all resolve.
var fieldAliases = map[string][]string{
	"title":             {"title", "property title", "property_title", "name"},
	"propertyType":      {"propertytype", "property_type", "property type", "type"},
	"transactionType":   {"transactiontype", "transaction_type", "transaction type", "transaction"},
	"price":             {"price", "expected price", "expected_price", "amount"},
	"rentFrequency":     {"rentfrequency", "rent_frequency", "rent frequency", "frequency"},
	"size":              {"size", "area", "carpet area", "carpet_area"},
	"sizeUnit":          {"sizeunit", "size_unit", "size unit", "area unit", "area_unit", "unit"},
	"location":          {"location", "locality", "city"},
	"fullAddress":       {"fulladdress", "full_address", "full address", "address"},
	"flatNumber":        {"flatnumber", "flat_number", "flat number", "flat", "flat no", "flat_no"},
	"floorNumber":       {"floornumber", "floor_number", "floor number", "floor"},
	"buildingSociety":   {"buildingsociety", "building_society", "building society", "society", "building"},
	"description":       {"description", "details", "notes"},
	"bhk":               {"bhk", "bedrooms", "beds"},
	"listingType":       {"listingtype", "listing_type", "listing type", "listing"},
	"isPubliclyVisible": {"ispubliclyvisible", "is_publicly_visible", "publicly visible", "public", "visible"},
	"ownerName":         {"ownername", "owner_name", "owner name", "owner"},
	"ownerPhone":        {"ownerphone", "owner_phone", "owner phone", "owner mobile", "owner_mobile", "owner contact", "owner_contact"},
	"commissionTerms":   {"commissionterms", "commission_terms", "commission terms", "commission"},
	"scopeOfWork":       {"scopeofwork", "scope_of_work", "scope of work", "scope"},
}

var sizeUnitAliases = map[string]string{
	"sqft":          "sq.ft",
	"sq.ft":         "sq.ft",
	"sq ft":         "sq.ft",
	"sq. ft":        "sq.ft",
	"sqft.":         "sq.ft",
	"square feet":   "sq.ft",
	"square foot":   "sq.ft",
	"sqm":           "sq.m",
	"sq.m":          "sq.m",
	"sq m":          "sq.m",
	"square meter":  "sq.m",
	"square meters": "sq.m",
	"square metre":  "sq.m",
	"sqyd":          "sq.yd",
	"sq.yd":         "sq.yd",
	"sq yd":         "sq.yd",
	"square yard":   "sq.yd",
	"square yards":  "sq.yd",
	"yards":         "sq.yd",
	"acre":          "acre",
	"acres":         "acre",
}

var listingTypeAliases = map[string]string{
	"exclusive":   models.ListingExclusive,
	"colisting":   models.ListingColisting,
	"co-listing":  models.ListingColisting,
	"co listing":  models.ListingColisting,
	"shared":      models.ListingShared,
	"open":        models.ListingShared,
	"open market": models.ListingShared,
}

var transactionTypeAliases = map[string]string{
	"sale":   models.TransactionSale,
	"sell":   models.TransactionSale,
	"resale": models.TransactionSale,
	"rent":   models.TransactionRent,
	"rental": models.TransactionRent,
	"lease":  models.TransactionRent,
}

var rentFrequencyAliases = map[string]string{
	"month":    models.RentMonthly,
	"monthly":  models.RentMonthly,
	"annual":   models.RentYearly,
	"annually": models.RentYearly,
	"year":     models.RentYearly,
	"yearly":   models.RentYearly,
}

var truthyTokens = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true,
	"false": false, "0": false, "no": false, "n": false,
}

// MapRow maps one parsed spreadsheet row onto the property input shape.
// Pure function of the row; validation happens separately.
func MapRow(row map[string]string) models.PropertyInput {
	lowered := make(map[string]string, len(row))
	for k, v := range row {
		lowered[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	get := func(field string) string {
		for _, alias := range fieldAliases[field] {
			if v := lowered[alias]; v != "" {
				return v
			}
		}
		return ""
	}

	in := models.PropertyInput{
		Title:           get("title"),
		PropertyType:    get("propertyType"),
		TransactionType: normalizeEnum(get("transactionType"), transactionTypeAliases),
		Price:           get("price"),
		RentFrequency:   normalizeEnum(get("rentFrequency"), rentFrequencyAliases),
		Size:            get("size"),
		SizeUnit:        normalizeEnum(get("sizeUnit"), sizeUnitAliases),
		Location:        get("location"),
		FullAddress:     get("fullAddress"),
		FlatNumber:      get("flatNumber"),
		FloorNumber:     get("floorNumber"),
		BuildingSociety: get("buildingSociety"),
		Description:     get("description"),
		BHK:             get("bhk"),
		ListingType:     normalizeEnum(get("listingType"), listingTypeAliases),
		OwnerName:       get("ownerName"),
		OwnerPhone:      get("ownerPhone"),
		CommissionTerms: get("commissionTerms"),
		ScopeOfWork:     ParseScopeOfWork(get("scopeOfWork")),
	}

	if v := get("isPubliclyVisible"); v != "" {
		if b, ok := truthyTokens[strings.ToLower(v)]; ok {
			in.IsPubliclyVisible = &b
		}
	}

	// Spreadsheets often encode the frequency inside the price cell
	// ("25,000 per month") instead of a separate column.
	if in.TransactionType == models.TransactionRent && in.RentFrequency == "" {
		priceLower := strings.ToLower(in.Price)
		if strings.Contains(priceLower, "month") {
			in.RentFrequency = models.RentMonthly
		} else if strings.Contains(priceLower, "year") || strings.Contains(priceLower, "annum") {
			in.RentFrequency = models.RentYearly
		}
	}

	return in
}

func normalizeEnum(raw string, aliases map[string]string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.Join(strings.Fields(key), " ")
	return aliases[key]
}

// ParseScopeOfWork accepts either a JSON array cell or a "|"- or ","-separated
// list and returns the trimmed items in order.
func ParseScopeOfWork(raw string) []string {
	if raw == "" {
		return nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		var items []string
		for _, item := range parsed {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		return items
	}

	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	var items []string
	for _, item := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
