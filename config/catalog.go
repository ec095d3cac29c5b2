package config

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/philipp01105/rlog/core"
)

// LoadCatalog parses a YAML message catalog:
//
//	server.started:
//	  level: notice
//	  message: server started
//
// Unknown template fields are rejected. An empty document yields an empty catalog.
func LoadCatalog(r io.Reader) (map[string]core.Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	catalog := make(map[string]core.Template)
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog, nil
		}
		return nil, err
	}
	return catalog, nil
}
