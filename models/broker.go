package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Broker struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Phone           string             `json:"phone" bson:"phone" validate:"required"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	Password        string             `json:"-" bson:"password,omitempty"`
	Agency          string             `json:"agency,omitempty" bson:"agency,omitempty"`
	ExperienceYears int                `json:"experienceYears" bson:"experienceYears"`
	LicenseID       string             `json:"licenseId,omitempty" bson:"licenseId,omitempty"`
	About           string             `json:"about,omitempty" bson:"about,omitempty"`
	PhotoURL        string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Role            string             `json:"role" bson:"role"`
	ProfileComplete bool               `json:"profileComplete" bson:"profileComplete"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type OTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type OTPVerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Broker    Broker `json:"broker"`
	NewBroker bool   `json:"newBroker"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Agency          string `json:"agency" form:"agency"`
	ExperienceYears string `json:"experienceYears" form:"experienceYears"`
	LicenseID       string `json:"licenseId" form:"licenseId"`
	About           string `json:"about" form:"about"`
}

// PublicProfile is the subset of broker fields shown to other brokers
// and to property owners on the consent page.
type PublicProfile struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Agency          string `json:"agency,omitempty"`
	Phone           string `json:"phone"`
	ExperienceYears int    `json:"experienceYears"`
	LicenseID       string `json:"licenseId,omitempty"`
	PhotoURL        string `json:"photoUrl,omitempty"`
}

func (b *Broker) Public() PublicProfile {
	return PublicProfile{
		ID:              b.ID.Hex(),
		Name:            b.Name,
		Agency:          b.Agency,
		Phone:           b.Phone,
		ExperienceYears: b.ExperienceYears,
		LicenseID:       b.LicenseID,
		PhotoURL:        b.PhotoURL,
	}
}
