package class

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// manifestField/manifestClass/Manifest describe the declarative class
// manifest cmd/jaotc reads in place of a real .class file parser: this
// core's front end is out of scope (spec.md §1's "Non-goals"), so the
// CLI needs some concrete way to describe classes for layout/trampoline
// queries. Grounded on the teacher's cmd/surge/project_manifest.go
// sectioned-TOML-struct approach.
type manifestField struct {
	Name       string `toml:"name"`
	Descriptor string `toml:"descriptor"`
	Static     bool   `toml:"static"`
	Final      bool   `toml:"final"`
	Volatile   bool   `toml:"volatile"`
}

type manifestClass struct {
	Name   string          `toml:"name"`
	Super  string          `toml:"super"`
	Native bool            `toml:"native"`
	Fields []manifestField `toml:"field"`
}

type Manifest struct {
	Class []manifestClass `toml:"class"`
}

// LoadManifest parses a class manifest TOML file into a Table, ready
// for InstanceLayout/StaticLayout queries.
func LoadManifest(path string) (*Table, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table := NewTable()
	for _, mc := range m.Class {
		c := &Class{Name: mc.Name, Super: mc.Super, Native: mc.Native}
		for _, mf := range mc.Fields {
			c.Fields = append(c.Fields, Field{
				Owner:      mc.Name,
				Name:       mf.Name,
				Descriptor: mf.Descriptor,
				Static:     mf.Static,
				Final:      mf.Final,
				Volatile:   mf.Volatile,
			})
		}
		table.Add(c)
	}
	return table, nil
}
