package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed words.json
var defaultWords []byte

const schemaURL = "wordiz://word-list.json"

var wordListSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"word", "meaning"},
		"properties": map[string]any{
			"word":    map[string]any{"type": "string", "minLength": 1},
			"meaning": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, wordListSchema); err != nil {
			compileErr = fmt.Errorf("add word list schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Parse decodes a JSON word list of the form [{"word": ..., "meaning": ...}].
// The document is validated before decoding.
func Parse(data []byte) ([]Word, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid word list: %w", err)
	}

	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	return words, nil
}

// LoadFile reads and parses a word list from disk.
func LoadFile(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in word list.
func Default() []Word {
	words, err := Parse(defaultWords)
	if err != nil {
		panic(fmt.Sprintf("vocab: built-in word list is invalid: %v", err))
	}
	return words
}

// Load returns the word list at path, or the built-in list when path is empty.
func Load(path string) ([]Word, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
