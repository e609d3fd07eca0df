package bulk

import (
	"strings"
	"testing"
)

func TestReadRows_CSV(t *testing.T) {
	csvData := strings.Join([]string{
		"title,price,ownerName",
		"Flat A,50000,Anil",
		" , , ",
		"Flat B,60000,Sunita",
		"Flat C,70000,Ravi",
	}, "\n")

	rows, err := ReadRows("upload.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 non-blank rows, got %d", len(rows))
	}

	// Blank rows keep their place in the numbering.
	expectedNums := []int{1, 3, 4}
	expectedTitles := []string{"Flat A", "Flat B", "Flat C"}
	for i, row := range rows {
		if row.Num != expectedNums[i] {
			t.Fatalf("row %d: expected Num %d, got %d", i, expectedNums[i], row.Num)
		}
		if row.Cells["title"] != expectedTitles[i] {
			t.Fatalf("row %d: expected title %q, got %q", i, expectedTitles[i], row.Cells["title"])
		}
	}
}

func TestReadRows_CSVHeaderTrimmed(t *testing.T) {
	csvData := " title , ownerPhone \nFlat A,9876543210\n"

	rows, err := ReadRows("upload.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Cells["title"] != "Flat A" || rows[0].Cells["ownerPhone"] != "9876543210" {
		t.Fatalf("headers not trimmed: %v", rows[0].Cells)
	}
}

func TestReadRows_ShortRow(t *testing.T) {
	csvData := "title,price,ownerName\nFlat A,50000\n"

	rows, err := ReadRows("upload.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Cells["ownerName"] != "" {
		t.Fatalf("missing trailing cell should read empty, got %q", rows[0].Cells["ownerName"])
	}
}

func TestReadRows_EmptyFile(t *testing.T) {
	if _, err := ReadRows("upload.csv", strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestReadRows_TemplateRoundTrip(t *testing.T) {
	header := "title,propertyType,transactionType,price,rentFrequency,size,sizeUnit,location,fullAddress,flatNumber,floorNumber,buildingSociety,description,bhk,listingType,isPubliclyVisible,ownerName,ownerPhone,commissionTerms,scopeOfWork"
	row := `2BHK in Baner,Apartment,sale,8500000,,980,sq.ft,Baner,"12 Sunshine Residency, Baner",A-12,3,Sunshine Residency,,2,shared,true,Anil,9876543210,2% on closure,photos | site visits`

	rows, err := ReadRows("upload.csv", strings.NewReader(header+"\n"+row+"\n"))
	if err != nil {
		t.Fatalf("ReadRows error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	input := MapRow(rows[0].Cells)
	property, errs := ValidateInput(input)
	if errs != nil {
		t.Fatalf("template row should validate cleanly, got %v", errs)
	}
	if property.Title != "2BHK in Baner" || property.ListingType != "shared" {
		t.Fatalf("unexpected mapped record: %+v", property)
	}
	if len(property.ScopeOfWork) != 2 {
		t.Fatalf("expected 2 scope items, got %v", property.ScopeOfWork)
	}
}
