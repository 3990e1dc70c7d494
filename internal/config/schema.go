package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// profileSetSchema is the JSON Schema for the top-level {global, profiles}
// document (§6). It only constrains shape and ranges that aren't already
// handled by ClampParameterValue; out-of-range parameter values are
// clamped rather than rejected (§7), so the schema intentionally omits
// minimum/maximum on the parameter fields.
const profileSetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["profiles"],
  "properties": {
    "global": {
      "type": "object",
      "properties": {
        "check_for_updates_on_startup": {"type": "boolean"},
        "show_in_menu_bar": {"type": "boolean"},
        "show_profile_name_in_menu_bar": {"type": "boolean"}
      }
    },
    "profiles": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "selected": {"type": "boolean"},
          "virtual_hid_keyboard": {
            "type": "object",
            "properties": {
              "country_code": {"type": "integer", "minimum": 0, "maximum": 35},
              "mouse_key_xy_scale": {"type": "integer", "minimum": 1}
            }
          },
          "parameters": {
            "type": "object",
            "properties": {
              "delay_milliseconds_before_open_device": {"type": "integer", "minimum": 0}
            }
          }
        }
      }
    }
  }
}`

const profileSetSchemaURI = "karabiner-go-core://profile-set.schema.json"

var compiledProfileSetSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(profileSetSchemaURI, bytes.NewReader([]byte(profileSetSchema))); err != nil {
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}
	s, err := compiler.Compile(profileSetSchemaURI)
	if err != nil {
		panic(fmt.Sprintf("config: schema does not compile: %v", err))
	}
	compiledProfileSetSchema = s
}

// ValidateDocument checks raw JSON against the profile-set schema before
// it is unmarshalled into a Set. Shape/range violations the schema can't
// express (e.g. clampable parameters) are handled separately by
// ClampParameterValue rather than rejected here.
func ValidateDocument(raw []byte) error {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("config: invalid JSON: %w", err)
	}
	if err := compiledProfileSetSchema.Validate(instance); err != nil {
		return fmt.Errorf("config: schema validation failed: %w", err)
	}
	return nil
}
