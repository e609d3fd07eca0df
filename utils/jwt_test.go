package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	brokerID := primitive.NewObjectID()

	token, err := GenerateJWT("test-secret", 24, brokerID, "+919876543210", "broker")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	claims, err := ValidateJWT("test-secret", token)
	if err != nil {
		t.Fatalf("ValidateJWT error: %v", err)
	}
	if claims.BrokerID != brokerID {
		t.Fatalf("expected broker id %s, got %s", brokerID.Hex(), claims.BrokerID.Hex())
	}
	if claims.Phone != "+919876543210" || claims.Role != "broker" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("test-secret", 24, primitive.NewObjectID(), "+919876543210", "broker")
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}
	if _, err := ValidateJWT("other-secret", token); err == nil {
		t.Fatalf("expected validation failure with wrong secret")
	}
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	if _, err := GenerateJWT("", 24, primitive.NewObjectID(), "+919876543210", "broker"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
