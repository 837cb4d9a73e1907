// Package ports declares the narrow contracts through which the engine talks
// to infrastructure: blackboard persistence today, with concrete adapters
// under pkg/adapters. It also ships reusable contract tests so every adapter
// proves the same behavior.
package ports
