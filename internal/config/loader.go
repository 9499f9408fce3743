package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/quantize-tools/quantcfg/internal/qparams"
)

//go:embed schema.cue
var schemaCUE string

// Error codes reported by the loader.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E002" // Config file not found
	ErrCodeUnknownExt   = "E003" // Unsupported file extension
	ErrCodeDecodeFailed = "E004" // YAML/CUE/JSON decode failed
	ErrCodeSchema       = "E005" // Document violates the CUE schema
	ErrCodeInvalidEnum  = "E006" // Unknown enumeration spelling
)

// LoadError represents an error that occurred while loading a
// configuration document.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads a configuration document and layers it over the documented
// defaults. The format is chosen by extension: .yaml/.yml or .cue.
func Load(path string) (*qparams.AdvancedQuantizationParams, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return fromYAML(data)
	case ".cue":
		return fromCUE(path, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnknownExt,
			Message: fmt.Sprintf("unsupported config extension %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}
}

// FromJSON decodes a canonical JSON document, as persisted by the profile
// store, back into the parameter model.
func FromJSON(data []byte) (*qparams.AdvancedQuantizationParams, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding JSON document: %v", err)}
	}
	return doc.Build()
}

// fromYAML decodes a YAML document strictly: unknown fields are rejected so
// a misspelled knob never silently keeps its default.
func fromYAML(data []byte) (*qparams.AdvancedQuantizationParams, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding YAML document: %v", err)}
	}
	return doc.Build()
}

// fromCUE compiles a CUE document, unifies it against the embedded schema
// and decodes the result. Schema violations carry source positions.
func fromCUE(path string, data []byte) (*qparams.AdvancedQuantizationParams, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling embedded schema: %v", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#AdvancedQuantization"))
	if !def.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "embedded schema is missing #AdvancedQuantization"}
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeDecodeFailed, err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, cueLoadError(ErrCodeDecodeFailed, err)
	}
	return doc.Build()
}

// cueLoadError extracts position info from CUE errors.
func cueLoadError(code string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
