package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Notes:
//   - Map keys are sorted by the encoder, so logically-equal payloads render
//     to identical bytes.
//   - If you need the most portable/lowest-dependency option, use JSON.
//   - The default codec may change over time; containers always record the
//     codec name so it can be validated on load.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-written cache entries. Existing entries are
// self-describing (they store the codec name in their header) and are read
// by selecting the appropriate codec by name.
var Default Codec = GoJSON{}
