// Package decorators provides single-child nodes that transform or gate
// their child's outcome. A decorator never reaches into its child's wiring
// and always drives the child through Execute, keeping open/close balanced.
package decorators
