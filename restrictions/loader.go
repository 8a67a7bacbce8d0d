package restrictions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var restrictionsSchema string

// ErrInvalidFormat is returned when a restriction file fails schema
// validation or cannot be decoded.
var ErrInvalidFormat = errors.New("invalid restrictions format")

// Load reads a restriction file. The format is chosen by extension: .json is
// validated against the embedded JSON schema before decoding, everything
// else is treated as YAML.
func Load(path string) (*Restrictions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read restrictions file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML restriction document.
func ParseYAML(data []byte) (*Restrictions, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fromRaw(raw), nil
}

// ParseJSON validates a JSON restriction document against the embedded
// schema, then decodes it.
func ParseJSON(data []byte) (*Restrictions, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(restrictionsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, strings.Join(details, "; "))
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return fromRaw(raw), nil
}
