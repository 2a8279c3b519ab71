package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 16

// RedeemKeyRequest is the body of POST /{lang}/premium/redeem
type RedeemKeyRequest struct {
	Key string `json:"key" validate:"required,max=128"`
}

// LinkRiotRequest is the body of POST /{lang}/rso/link
type LinkRiotRequest struct {
	AuthCode string `json:"authCode" validate:"required,max=256"`
}

// RegisterCommandRequest is the body of POST /internal/commands
type RegisterCommandRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=512"`
}

// decodeJSON reads and validates a JSON request body
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
