package jsonapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cast"
)

// TransformerDirectory maps a raw attribute value and its field descriptor
// to a domain-typed value. It is a pure value-conversion boundary: the
// deserializer never inspects value semantics beyond null-presence.
// Implementations shared across concurrent passes must be stateless or
// internally synchronized.
type TransformerDirectory interface {
	Deserialize(value interface{}, attr Attribute) (interface{}, error)
}

// TransformerFunc adapts a function to a TransformerDirectory.
type TransformerFunc func(value interface{}, attr Attribute) (interface{}, error)

// Deserialize calls the underlying function.
func (f TransformerFunc) Deserialize(value interface{}, attr Attribute) (interface{}, error) {
	return f(value, attr)
}

// basicTransformers dispatches on the attribute's declared ValueType.
type basicTransformers struct{}

// NewTransformerDirectory returns the built-in transformer directory. It
// coerces scalars, parses ValueDate attributes as RFC 3339 timestamps, and
// parses ValueURL attributes into *url.URL. ValueRaw passes through.
func NewTransformerDirectory() TransformerDirectory {
	return basicTransformers{}
}

func (basicTransformers) Deserialize(value interface{}, attr Attribute) (interface{}, error) {
	switch attr.Type {
	case ValueString:
		v, err := cast.ToStringE(value)
		return v, transformErr(attr, err)
	case ValueBool:
		v, err := cast.ToBoolE(value)
		return v, transformErr(attr, err)
	case ValueInt:
		v, err := cast.ToInt64E(value)
		return v, transformErr(attr, err)
	case ValueFloat:
		v, err := cast.ToFloat64E(value)
		return v, transformErr(attr, err)
	case ValueDate:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, transformErr(attr, err)
		}
		t, err := time.Parse(time.RFC3339, s)
		return t, transformErr(attr, err)
	case ValueURL:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, transformErr(attr, err)
		}
		u, err := url.Parse(s)
		return u, transformErr(attr, err)
	default:
		return value, nil
	}
}

func transformErr(attr Attribute, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: attribute %q: %v", ErrTransformFailed, attr.Name(), err)
}
