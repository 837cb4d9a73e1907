package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Project is the serialized form of a set of trees that may reference each
// other as sub-trees. YAML and JSON are both accepted (YAML is a superset).
type Project struct {
	Trees []TreeSpec `json:"trees" yaml:"trees"`
}

// TreeSpec is the serialized form of one tree: metadata, a flat node table
// keyed by local node ID, and the designated root entry.
type TreeSpec struct {
	ID          string              `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string              `json:"title,omitempty" yaml:"title,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]any      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Root        string              `json:"root" yaml:"root"`
	Nodes       map[string]NodeSpec `json:"nodes" yaml:"nodes"`
}

// NodeSpec describes one node. Name is either a registered node-type name or
// the ID of another tree in the same project, which turns this entry into a
// sub-tree reference. Children applies to composites, Child to decorators.
type NodeSpec struct {
	Name        string         `json:"name" yaml:"name"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children    []string       `json:"children,omitempty" yaml:"children,omitempty"`
	Child       string         `json:"child,omitempty" yaml:"child,omitempty"`
}

// Parse decodes a project document. Malformed input (anything that is not a
// mapping with a trees list) is reported as an error, never a panic.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("malformed project document: %w", err)
	}
	if p.Trees == nil {
		return nil, fmt.Errorf("malformed project document: missing trees list")
	}
	return &p, nil
}
