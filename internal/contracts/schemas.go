package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Имена схем тел запросов
const (
	PropertyCreate      = "property-create"
	PropertyUpdate      = "property-update"
	ContactCreate       = "contact-create"
	InquiryCreate       = "inquiry-create"
	Login               = "login"
	UserCreate          = "user-create"
	DescriptionGenerate = "description-generate"
)

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

// Load компилирует все встроенные схемы. Повторные вызовы возвращают результат первого.
func Load() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true

		entries, err := fs.ReadDir(schemaFiles, "schemas")
		if err != nil {
			compileErr = fmt.Errorf("failed to list schemas: %w", err)
			return
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			file := path.Join("schemas", e.Name())
			data, err := schemaFiles.ReadFile(file)
			if err != nil {
				compileErr = fmt.Errorf("failed to read schema %s: %w", file, err)
				return
			}
			if err := compiler.AddResource(file, bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("failed to add schema %s: %w", file, err)
				return
			}
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}

		schemas := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			schema, err := compiler.Compile(path.Join("schemas", name+".json"))
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
				return
			}
			schemas[name] = schema
		}
		compiledSchemas = schemas
	})
	return compileErr
}

// ValidateRequest проверяет тело запроса по схеме с указанным именем
func ValidateRequest(name string, body []byte) error {
	if err := Load(); err != nil {
		return err
	}
	schema, ok := compiledSchemas[name]
	if !ok {
		return fmt.Errorf("schema '%s' not found", name)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
