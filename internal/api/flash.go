package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	flashTTL     = 5 * time.Minute
	flashSubject = "flash"
)

type FlashPayload struct {
	SavedDate string `json:"saved_date,omitempty"`
}

type flashClaims struct {
	FlashPayload
	jwt.RegisteredClaims
}

func deriveFlashKey(secretKey []byte) ([]byte, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte("cyclenote.flash.v1")), key); err != nil {
		return nil, fmt.Errorf("derive flash key: %w", err)
	}
	return key, nil
}

func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload.SavedDate = strings.TrimSpace(payload.SavedDate)
	if payload.SavedDate == "" {
		handler.clearFlashCookie(c)
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		FlashPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   flashSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	})
	signed, err := token.SignedString(handler.flashKey)
	if err != nil {
		handler.log.WithError(err).Warn("sign flash cookie failed")
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    signed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  now.Add(flashTTL),
	})
}

// popFlashCookie reads and clears the flash. Tampered or expired values read as empty.
func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	claims := &flashClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return handler.flashKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(flashSubject), jwt.WithExpirationRequired())
	if err != nil {
		return FlashPayload{}
	}
	return claims.FlashPayload
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
