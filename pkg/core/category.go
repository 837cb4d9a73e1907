package core

// Category tags a node with its wiring contract.
type Category string

const (
	// CategoryComposite nodes own an ordered list of children.
	CategoryComposite Category = "composite"
	// CategoryDecorator nodes own exactly one child.
	CategoryDecorator Category = "decorator"
	// CategoryAction nodes are leaves that perform work.
	CategoryAction Category = "action"
	// CategoryCondition nodes are leaves that test a predicate.
	CategoryCondition Category = "condition"
)
