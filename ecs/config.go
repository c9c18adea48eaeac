package ecs

import (
	"errors"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ComponentDefs maps component kinds to their configuration records.
// It is the body of a prefab and of an entity definition.
type ComponentDefs map[Kind]Data

// SystemDef declares a system to instantiate through the SystemRegistry.
type SystemDef struct {
	Type       string `yaml:"type"`
	Properties Data   `yaml:"properties,omitempty"`
}

// EntityDef declares an entity. Components are applied on top of the named prefab, if any.
type EntityDef struct {
	Prefab     string        `yaml:"prefab,omitempty"`
	Components ComponentDefs `yaml:"components,omitempty"`
}

// Config is the declarative description of a world consumed by World.LoadFromConfig.
type Config struct {
	Systems  []SystemDef              `yaml:"systems,omitempty"`
	Camera   Data                     `yaml:"camera,omitempty"`
	Scene    Data                     `yaml:"scene,omitempty"`
	Prefabs  map[string]ComponentDefs `yaml:"prefabs,omitempty"`
	Entities []EntityDef              `yaml:"entities,omitempty"`
}

// ParseConfig decodes a YAML document. JSON documents are accepted as well.
// An empty document yields an empty Config.
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config

	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, eris.Wrap(err, "failed to decode config")
	}

	return &cfg, nil
}

// LoadConfigFile reads and decodes the config document at path.
func LoadConfigFile(path string) (*Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open config %q", path)
	}

	defer fp.Close()

	cfg, err := ParseConfig(fp)
	if err != nil {
		return nil, eris.Wrapf(err, "config %q", path)
	}

	return cfg, nil
}
