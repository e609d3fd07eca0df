package models

type DuplicateEntry struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type SMSWarning struct {
	Row    int    `json:"row"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BulkUploadSummary is built fresh per upload request and never persisted.
// Successful + Failed always equals Total over non-blank rows.
type BulkUploadSummary struct {
	Total       int              `json:"total"`
	Successful  int              `json:"successful"`
	Failed      int              `json:"failed"`
	Errors      []string         `json:"errors"`
	Duplicates  []DuplicateEntry `json:"duplicates"`
	SMSWarnings []SMSWarning     `json:"smsWarnings"`
}

func NewBulkUploadSummary() *BulkUploadSummary {
	return &BulkUploadSummary{
		Errors:      []string{},
		Duplicates:  []DuplicateEntry{},
		SMSWarnings: []SMSWarning{},
	}
}
