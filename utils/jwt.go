package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JWTClaims struct {
	BrokerID primitive.ObjectID `json:"broker_id"`
	Phone    string             `json:"phone"`
	Role     string             `json:"role"`
	jwt.RegisteredClaims
}

func GenerateJWT(secret string, expiryHours int, brokerID primitive.ObjectID, phone, role string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}

	claims := JWTClaims{
		BrokerID: brokerID,
		Phone:    phone,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateJWT(secret, tokenString string) (*JWTClaims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
