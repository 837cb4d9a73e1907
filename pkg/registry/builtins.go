package registry

import (
	"fmt"
	"time"

	"github.com/aretw0/canopy/pkg/composites"
	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/decorators"
	"github.com/aretw0/canopy/pkg/leaves"
	"github.com/mitchellh/mapstructure"
)

// Property bags use "mapstructure" tags so that YAML and JSON sources decode
// uniformly. WeaklyTypedInput tolerates the float64 numbers JSON produces.
func decodeProps(properties map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(properties); err != nil {
		return fmt.Errorf("invalid properties: %w", err)
	}
	return nil
}

type parallelProps struct {
	SuccessThreshold int `mapstructure:"successThreshold"`
	FailureThreshold int `mapstructure:"failureThreshold"`
}

type loopProps struct {
	MaxLoop int `mapstructure:"maxLoop"`
}

type waitProps struct {
	Milliseconds int `mapstructure:"milliseconds"`
}

// Default returns a registry pre-populated with the built-in node types:
// Sequence, Selector, MemSequence, MemSelector, Parallel, Inverter,
// RepeatUntilFailure, Limiter, Succeeder, Failer, Succeed, Fail, Error,
// Runner and Wait. Callers extend it through Register, which shadows
// built-ins of the same name.
func Default() *Registry {
	r := New()

	r.RegisterBuiltin("Sequence", func(props map[string]any) (core.Node, error) {
		n := composites.NewSequence()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Selector", func(props map[string]any) (core.Node, error) {
		n := composites.NewSelector()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("MemSequence", func(props map[string]any) (core.Node, error) {
		n := composites.NewMemSequence()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("MemSelector", func(props map[string]any) (core.Node, error) {
		n := composites.NewMemSelector()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Parallel", func(props map[string]any) (core.Node, error) {
		var p parallelProps
		if err := decodeProps(props, &p); err != nil {
			return nil, err
		}
		n := composites.NewParallel(p.FailureThreshold, p.SuccessThreshold)
		n.SetProperties(props)
		return n, nil
	})

	r.RegisterBuiltin("Inverter", func(props map[string]any) (core.Node, error) {
		n := decorators.NewInverter(nil)
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("RepeatUntilFailure", func(props map[string]any) (core.Node, error) {
		var p loopProps
		if err := decodeProps(props, &p); err != nil {
			return nil, err
		}
		n := decorators.NewRepeatUntilFailure(p.MaxLoop, nil)
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Limiter", func(props map[string]any) (core.Node, error) {
		var p loopProps
		if err := decodeProps(props, &p); err != nil {
			return nil, err
		}
		n := decorators.NewLimiter(p.MaxLoop, nil)
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Succeeder", func(props map[string]any) (core.Node, error) {
		n := decorators.NewSucceeder(nil)
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Failer", func(props map[string]any) (core.Node, error) {
		n := decorators.NewFailer(nil)
		n.SetProperties(props)
		return n, nil
	})

	r.RegisterBuiltin("Succeed", func(props map[string]any) (core.Node, error) {
		n := leaves.NewSucceed()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Fail", func(props map[string]any) (core.Node, error) {
		n := leaves.NewFail()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Error", func(props map[string]any) (core.Node, error) {
		n := leaves.NewErr()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Runner", func(props map[string]any) (core.Node, error) {
		n := leaves.NewRunner()
		n.SetProperties(props)
		return n, nil
	})
	r.RegisterBuiltin("Wait", func(props map[string]any) (core.Node, error) {
		var p waitProps
		if err := decodeProps(props, &p); err != nil {
			return nil, err
		}
		n := leaves.NewWait(time.Duration(p.Milliseconds) * time.Millisecond)
		n.SetProperties(props)
		return n, nil
	})

	return r
}
