package jsonapi

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func TestBasicTransformers(t *testing.T) {
	directory := NewTransformerDirectory()

	v, err := directory.Deserialize("Bob", Attribute{FieldName: "name", Type: ValueString})
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if v != "Bob" {
		t.Fatalf("unexpected string: %v", v)
	}

	v, err = directory.Deserialize(true, Attribute{FieldName: "active", Type: ValueBool})
	if err != nil || v != true {
		t.Fatalf("bool: %v %v", v, err)
	}

	// JSON numbers decode as float64; integer attributes coerce.
	v, err = directory.Deserialize(float64(42), Attribute{FieldName: "count", Type: ValueInt})
	if err != nil {
		t.Fatalf("int: %v", err)
	}
	if v.(int64) != 42 {
		t.Fatalf("unexpected int: %v", v)
	}

	v, err = directory.Deserialize(float64(1.5), Attribute{FieldName: "score", Type: ValueFloat})
	if err != nil || v.(float64) != 1.5 {
		t.Fatalf("float: %v %v", v, err)
	}

	v, err = directory.Deserialize("2014-05-20T09:13:00Z", Attribute{FieldName: "createdAt", Type: ValueDate})
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	want := time.Date(2014, 5, 20, 9, 13, 0, 0, time.UTC)
	if !v.(time.Time).Equal(want) {
		t.Fatalf("unexpected date: %v", v)
	}

	v, err = directory.Deserialize("http://example.com/people/1", Attribute{FieldName: "profile", Type: ValueURL})
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if v.(*url.URL).Host != "example.com" {
		t.Fatalf("unexpected url: %v", v)
	}

	raw := map[string]interface{}{"nested": true}
	v, err = directory.Deserialize(raw, Attribute{FieldName: "extra", Type: ValueRaw})
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if v.(map[string]interface{})["nested"] != true {
		t.Fatalf("raw value must pass through untouched: %v", v)
	}
}

func TestTransformFailure(t *testing.T) {
	directory := NewTransformerDirectory()
	_, err := directory.Deserialize("not a number", Attribute{FieldName: "count", Type: ValueInt})
	if !errors.Is(err, ErrTransformFailed) {
		t.Fatalf("expected ErrTransformFailed, got %v", err)
	}
	_, err = directory.Deserialize("not a date", Attribute{FieldName: "createdAt", Type: ValueDate})
	if !errors.Is(err, ErrTransformFailed) {
		t.Fatalf("expected ErrTransformFailed, got %v", err)
	}
}

func TestTransformerFunc(t *testing.T) {
	directory := TransformerFunc(func(value interface{}, attr Attribute) (interface{}, error) {
		return attr.Name() + ":" + value.(string), nil
	})
	v, err := directory.Deserialize("x", Attribute{FieldName: "tag"})
	if err != nil || v != "tag:x" {
		t.Fatalf("unexpected: %v %v", v, err)
	}
}
