package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Package is one nixpkgs search result.
type Package struct {
	// Attr is the attribute path key from the search output, e.g.
	// "legacyPackages.x86_64-linux.ripgrep".
	Attr string

	// Name is the package name (pname) used as the entry token.
	Name string

	Version     string
	Description string
}

// Label renders the package for selection lists: "name version: description".
func (p Package) Label() string {
	label := p.Name + " " + p.Version
	if p.Description != "" {
		label += ": " + p.Description
	}
	return label
}

// rawResult mirrors one value of the JSON object "nix search --json" prints.
// Description is optional in the nix output.
type rawResult struct {
	PName       string `json:"pname"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ParseError reports undecodable nix search output.
type ParseError struct {
	Err error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parsing nix search output: %v", e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }

// ParseResults decodes the JSON object printed by "nix search --json" into
// packages sorted by attribute path. The object keys are attribute paths;
// sorting them keeps interactive listings deterministic across runs.
func ParseResults(data []byte) ([]Package, error) {
	results := map[string]rawResult{}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, ParseError{Err: err}
	}

	packages := make([]Package, 0, len(results))
	for attr, r := range results {
		name := r.PName
		if name == "" {
			// Fall back to the attribute leaf when pname is absent.
			parts := strings.Split(attr, ".")
			name = parts[len(parts)-1]
		}
		packages = append(packages, Package{
			Attr:        attr,
			Name:        name,
			Version:     r.Version,
			Description: r.Description,
		})
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Attr < packages[j].Attr
	})

	return packages, nil
}
