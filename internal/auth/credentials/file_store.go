package credentials

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type principalsFile struct {
	Principals []struct {
		ID           string   `yaml:"id"`
		Verifier     string   `yaml:"verifier"`
		Capabilities []string `yaml:"capabilities"`
	} `yaml:"principals"`
}

// LoadFile reads a YAML principals file:
//
//	principals:
//	  - id: admin
//	    verifier: $argon2id$v=19$...
//	    capabilities: [admin]
func LoadFile(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a StaticStore from YAML bytes in the LoadFile format.
func Parse(data []byte) (*StaticStore, error) {
	var f principalsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("credentials: parse principals: %w", err)
	}

	list := make([]Principal, 0, len(f.Principals))
	for _, p := range f.Principals {
		caps := make([]Capability, 0, len(p.Capabilities))
		for _, c := range p.Capabilities {
			caps = append(caps, Capability(c))
		}
		list = append(list, Principal{
			ID:           p.ID,
			Verifier:     p.Verifier,
			Capabilities: caps,
		})
	}

	return NewStaticStore(list...)
}
