package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared request validator.
var Validate = validator.New()

// maxBodyBytes bounds JSON request bodies. Word-count text is the largest
// expected payload.
const maxBodyBytes = 8 << 20

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ValidateRequest runs v's own Validate method when it has one and the
// struct tag validator otherwise.
func ValidateRequest(v any) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return Validate.Struct(v)
}
