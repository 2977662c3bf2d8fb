package delivery

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenAudience = "doordash"
	tokenVersion  = "DD-JWT-V1"
	tokenTTL      = 300 * time.Second

	MsgMissingCredentials = "Missing required DoorDash credentials. Please check your .env file."
)

// NewToken mints a short-lived Drive API token. exp and iat are whole seconds
// encoded as strings, which the Drive API accepts.
func NewToken(cfg Config, now time.Time) (string, error) {
	if cfg.DeveloperID == "" || cfg.KeyID == "" || cfg.SigningSecret == "" {
		return "", errx.Config(MsgMissingCredentials)
	}

	secret, err := decodeSecret(cfg.SigningSecret)
	if err != nil {
		return "", errx.New(errx.KindConfig, err, http.StatusInternalServerError, "DoorDash signing secret is not valid base64url")
	}

	iat := now.Unix()
	claims := jwt.MapClaims{
		"aud": tokenAudience,
		"iss": cfg.DeveloperID,
		"kid": cfg.KeyID,
		"exp": strconv.FormatInt(iat+int64(tokenTTL/time.Second), 10),
		"iat": strconv.FormatInt(iat, 10),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["dd-ver"] = tokenVersion

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errx.Unexpected(err, fmt.Sprintf("sign delivery token: %v", err))
	}
	return signed, nil
}

// decodeSecret accepts base64url with or without padding.
func decodeSecret(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(s), "="))
}
