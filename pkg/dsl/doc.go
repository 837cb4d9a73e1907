// Package dsl builds tree specifications programmatically, as an alternative
// to YAML/JSON documents. The output feeds the loader unchanged, so DSL-built
// and file-loaded trees behave identically.
package dsl
