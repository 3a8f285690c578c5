package taskstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// codec converts between file bytes and documents.
type codec interface {
	Name() string
	// Decode parses data into generic JSON-shaped values for validation.
	Decode(data []byte) (interface{}, error)
	Encode(doc Document) ([]byte, error)
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Decode(data []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

func (jsonCodec) Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(nonNil(doc)); err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	// Encode already appends the trailing newline.
	return buf.Bytes(), nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// Round-trip through JSON so the validator sees the same value shapes
	// for both formats.
	encoded, err := json.Marshal(stringKeys(raw))
	if err != nil {
		return nil, fmt.Errorf("normalize yaml: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(encoded, &v); err != nil {
		return nil, fmt.Errorf("normalize yaml: %w", err)
	}
	return v, nil
}

// stringKeys rewrites YAML mappings with non-string keys into string-keyed
// maps. An unquoted date key such as 2024-03-15 resolves to a timestamp,
// which makes yaml.v3 decode its mapping as map[interface{}]interface{}.
func stringKeys(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, val := range v {
			m[yamlKey(k)] = stringKeys(val)
		}
		return m
	case map[string]interface{}:
		for k, val := range v {
			v[k] = stringKeys(val)
		}
		return v
	case []interface{}:
		for i, val := range v {
			v[i] = stringKeys(val)
		}
		return v
	default:
		return v
	}
}

func yamlKey(k interface{}) string {
	switch k := k.(type) {
	case string:
		return k
	case time.Time:
		if k.Hour() == 0 && k.Minute() == 0 && k.Second() == 0 && k.Nanosecond() == 0 {
			return k.Format("2006-01-02")
		}
		return k.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(k)
	}
}

func (yamlCodec) Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(doc)); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// nonNil keeps an empty store serializing as {} rather than null.
func nonNil(doc Document) Document {
	if doc == nil {
		return Document{}
	}
	return doc
}
