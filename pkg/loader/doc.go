// Package loader deserializes declarative tree specifications (YAML or JSON)
// into live node graphs. A project loads in two project-wide passes: every
// tree shell and node instance first, wiring second, so trees can reference
// each other as shared sub-trees regardless of declaration order.
package loader
