package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TransactionSale = "sale"
	TransactionRent = "rent"

	RentMonthly = "monthly"
	RentYearly  = "yearly"

	ListingExclusive = "exclusive"
	ListingColisting = "colisting"
	ListingShared    = "shared"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

var SizeUnits = []string{"sq.ft", "sq.m", "sq.yd", "acre"}

type Property struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title             string               `bson:"title" json:"title"`
	PropertyType      string               `bson:"propertyType" json:"propertyType"`
	TransactionType   string               `bson:"transactionType" json:"transactionType"`
	Price             string               `bson:"price" json:"price"`
	RentFrequency     string               `bson:"rentFrequency,omitempty" json:"rentFrequency,omitempty"`
	Size              string               `bson:"size,omitempty" json:"size,omitempty"`
	SizeUnit          string               `bson:"sizeUnit,omitempty" json:"sizeUnit,omitempty"`
	Location          string               `bson:"location" json:"location"`
	FullAddress       string               `bson:"fullAddress" json:"fullAddress"`
	FlatNumber        string               `bson:"flatNumber,omitempty" json:"flatNumber,omitempty"`
	FloorNumber       string               `bson:"floorNumber,omitempty" json:"floorNumber,omitempty"`
	BuildingSociety   string               `bson:"buildingSociety,omitempty" json:"buildingSociety,omitempty"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	BHK               int                  `bson:"bhk" json:"bhk"`
	ListingType       string               `bson:"listingType" json:"listingType"`
	IsPubliclyVisible bool                 `bson:"isPubliclyVisible" json:"isPubliclyVisible"`
	OwnerName         string               `bson:"ownerName" json:"ownerName"`
	OwnerPhone        string               `bson:"ownerPhone" json:"ownerPhone"`
	CommissionTerms   string               `bson:"commissionTerms,omitempty" json:"commissionTerms,omitempty"`
	ScopeOfWork       []string             `bson:"scopeOfWork,omitempty" json:"scopeOfWork,omitempty"`
	Images            []string             `bson:"images,omitempty" json:"images,omitempty"`
	ApprovalStatus    string               `bson:"approvalStatus" json:"approvalStatus"`
	ConsentToken      string               `bson:"consentToken" json:"-"`
	ConsentSentAt     time.Time            `bson:"consentSentAt" json:"consentSentAt"`
	BrokerID          primitive.ObjectID   `bson:"brokerId" json:"brokerId"`
	CoBrokerIDs       []primitive.ObjectID `bson:"coBrokerIds,omitempty" json:"coBrokerIds,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PropertyInput is the loosely-typed shape a property arrives in, whether from
// the interactive multipart form or from one mapped CSV/XLSX row. Empty string
// or nil means the caller never supplied the field.
type PropertyInput struct {
	Title             string
	PropertyType      string
	TransactionType   string
	Price             string
	RentFrequency     string
	Size              string
	SizeUnit          string
	Location          string
	FullAddress       string
	FlatNumber        string
	FloorNumber       string
	BuildingSociety   string
	Description       string
	BHK               string
	ListingType       string
	IsPubliclyVisible *bool
	OwnerName         string
	OwnerPhone        string
	CommissionTerms   string
	ScopeOfWork       []string
}

// OwnerConsent reports the outcome of the consent SMS dispatched while
// creating or editing a property.
type OwnerConsent struct {
	SMSStatus string `json:"smsStatus"`
	SMSError  string `json:"smsError,omitempty"`
}

type PropertyResponse struct {
	Property     Property     `json:"property"`
	OwnerConsent OwnerConsent `json:"ownerConsent"`
}

type ConsentView struct {
	ID       string        `json:"id"`
	Status   string        `json:"status"`
	Property Property      `json:"property"`
	Agent    PublicProfile `json:"agent"`
}
