package credential

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Subject schemas, one per credential kind. Validation is opt-in via
// WithSchemaValidation and runs before signing, so a malformed subject is
// rejected without spending a signing round trip.
var subjectSchemas = map[Kind]string{
	KindItemCreated: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["id", "itemId", "listId", "itemName", "creatorDid", "createdAt"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"itemId": {"type": "string", "minLength": 1},
			"listId": {"type": "string", "minLength": 1},
			"itemName": {"type": "string", "minLength": 1},
			"creatorDid": {"type": "string", "minLength": 1},
			"createdAt": {"type": "string", "minLength": 1}
		}
	}`,
	KindItemCompleted: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["id", "itemId", "listId", "itemName", "completerDid", "completedAt"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"itemId": {"type": "string", "minLength": 1},
			"listId": {"type": "string", "minLength": 1},
			"itemName": {"type": "string", "minLength": 1},
			"completerDid": {"type": "string", "minLength": 1},
			"completedAt": {"type": "string", "minLength": 1}
		}
	}`,
	KindListOwnership: `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["id", "listId", "assetDid", "ownerDid", "listName", "role"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"listId": {"type": "string", "minLength": 1},
			"assetDid": {"type": "string", "minLength": 1},
			"ownerDid": {"type": "string", "minLength": 1},
			"listName": {"type": "string", "minLength": 1},
			"role": {"type": "string", "enum": ["owner"]}
		}
	}`,
}

// validateSubject validates a subject map against its kind's schema.
func validateSubject(kind Kind, subject map[string]any) error {
	schema, ok := subjectSchemas[kind]
	if !ok {
		return fmt.Errorf("no schema for credential kind %s", kind)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(subject))
	if err != nil {
		return fmt.Errorf("failed to validate subject schema: %w", err)
	}

	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("subject does not match %s schema: %s", kind, strings.Join(details, "; "))
	}

	return nil
}
