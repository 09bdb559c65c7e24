// Package serializer provides the formats StoreData and CacheData write.
package serializer

import (
	"encoding/json"
	"sort"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Serializer converts values to and from bytes.
type Serializer interface {
	// Name is the registry key and the file extension.
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// Default is used when no serializer is configured.
const Default = "json"

type jsonSerializer struct{}

func (jsonSerializer) Name() string { return "json" }

func (jsonSerializer) Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonSerializer) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

type yamlSerializer struct{}

func (yamlSerializer) Name() string { return "yaml" }

func (yamlSerializer) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlSerializer) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

type tomlSerializer struct{}

func (tomlSerializer) Name() string { return "toml" }

func (tomlSerializer) Marshal(v interface{}) ([]byte, error) {
	return toml.Marshal(v)
}

func (tomlSerializer) Unmarshal(data []byte, v interface{}) error {
	return toml.Unmarshal(data, v)
}

var registry = map[string]Serializer{}

func init() {
	Register(jsonSerializer{})
	Register(yamlSerializer{})
	Register(tomlSerializer{})
}

// Register adds s, replacing any serializer with the same name.
func Register(s Serializer) {
	registry[s.Name()] = s
}

// Get returns the serializer called name. An empty name selects Default.
func Get(name string) (Serializer, error) {
	if name == "" {
		name = Default
	}
	s, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrSerializerUnknown, "unknown serializer %q", name).
			WithDetail("available", Names())
	}
	return s, nil
}

// Names lists registered serializers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
