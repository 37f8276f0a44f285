package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/omar-albarakeh/ngo-backend-reciept-email/internal/common"
)

// donationSchema guards the donation payload before it reaches the
// pipeline: required fields plus basic types.
var donationSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "surname", "amount", "email"},
	"properties": map[string]any{
		"name":       map[string]any{"type": "string", "minLength": 1},
		"surname":    map[string]any{"type": "string", "minLength": 1},
		"address":    map[string]any{"type": "string"},
		"postalCode": map[string]any{"type": "string"},
		"city":       map[string]any{"type": "string"},
		"amount":     map[string]any{"type": "number", "exclusiveMinimum": 0},
		"amountText": map[string]any{"type": "string"},
		"email":      map[string]any{"type": "string", "minLength": 3},
	},
}

var compiledDonationSchema = mustCompileSchema(donationSchema)

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("donation.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema: %v", err))
	}
	schema, err := compiler.Compile("donation.json")
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// validateDonation checks the raw request body against the donation schema.
func validateDonation(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.NewAppError("BAD_JSON", "request body is not valid json", common.ErrInvalidInput)
	}
	if err := compiledDonationSchema.Validate(v); err != nil {
		return common.NewAppError("SCHEMA_VIOLATION", "missing or invalid donation fields", common.ErrInvalidInput)
	}
	return nil
}
