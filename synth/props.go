package synth

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Props stores engine parameters that can be updated from the control path
// without locks. All properties are registered at construction, before any
// reads take place; the render path loads them at block boundaries.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first.
func (p *Props) Set(key string, value interface{}) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := p.setters[key](value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return prop.Load(), nil
}

// Keys lists the registered property names, sorted.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.properties))
	for k := range p.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *Props) register(key string, set setter, init interface{}) *atomic.Value {
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	if err := set(init, &prop); err != nil {
		panic(err)
	}
	return &prop
}

type setter func(val interface{}, dest *atomic.Value) error

// setLevel accepts an output level in dB.
var setLevel = setFloat64(-40, 10)

func setFloat64(min, max float64) setter {
	return func(v interface{}, dest *atomic.Value) error {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		default:
			return fmt.Errorf("value is not a float64: %v", v)
		}
		if f < min || f > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, f)
		}
		dest.Store(f)
		return nil
	}
}

func setInt(min, max int) setter {
	return func(v interface{}, dest *atomic.Value) error {
		var i int
		switch n := v.(type) {
		case int:
			i = n
		case float64:
			i = int(n)
		default:
			return fmt.Errorf("value is not an int: %v", v)
		}
		if i < min || i > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, i)
		}
		dest.Store(i)
		return nil
	}
}
