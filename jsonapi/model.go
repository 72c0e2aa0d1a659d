package jsonapi

import (
	"fmt"
	"net/url"
)

// ResourceIdentifier is an immutable (type, id) pair identifying a resource
// without embedding its data. Equality is by value.
type ResourceIdentifier struct {
	// Type is the resource type name.
	Type string
	// ID is the resource id.
	ID string
}

// String returns "type/id".
func (ri ResourceIdentifier) String() string {
	return fmt.Sprintf("%s/%s", ri.Type, ri.ID)
}

// Resource is a mutable domain object identified by (type, id) once its id
// is known. Within one deserialization pass at most one Resource exists per
// distinct (type, id); every reference to that pair resolves to the same
// object.
type Resource struct {
	// Type is the resource type name.
	Type string
	// ID is the resource id. Empty for identity-less relationship stubs.
	ID string
	// URL is the resource's self link, if present.
	URL *url.URL
	// Meta holds the resource-level meta block, if present.
	Meta map[string]interface{}
	// IsLoaded is true once deserialization populated the resource.
	// It stays false for stubs created from relationship linkage alone.
	IsLoaded bool
	// Fields is the declared field set for the resource's type.
	Fields []Field

	attributes map[string]interface{}
	toOne      map[string]*Resource
	toMany     map[string]*LinkedResourceCollection
}

// Identifier returns the resource's (type, id) pair.
func (r *Resource) Identifier() ResourceIdentifier {
	return ResourceIdentifier{Type: r.Type, ID: r.ID}
}

// FieldByName returns the declared field descriptor with the given name.
func (r *Resource) FieldByName(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Attribute returns the attribute value stored under name.
func (r *Resource) Attribute(name string) (interface{}, bool) {
	v, ok := r.attributes[name]
	return v, ok
}

// SetAttribute assigns an attribute value by field name.
func (r *Resource) SetAttribute(name string, value interface{}) {
	if r.attributes == nil {
		r.attributes = make(map[string]interface{})
	}
	r.attributes[name] = value
}

// ToOne returns the resource assigned to the named to-one relationship.
func (r *Resource) ToOne(name string) (*Resource, bool) {
	v, ok := r.toOne[name]
	return v, ok
}

// SetToOne assigns a to-one relationship by field name.
func (r *Resource) SetToOne(name string, linked *Resource) {
	if r.toOne == nil {
		r.toOne = make(map[string]*Resource)
	}
	r.toOne[name] = linked
}

// ToMany returns the collection assigned to the named to-many relationship.
func (r *Resource) ToMany(name string) (*LinkedResourceCollection, bool) {
	v, ok := r.toMany[name]
	return v, ok
}

// SetToMany assigns a to-many relationship by field name.
func (r *Resource) SetToMany(name string, coll *LinkedResourceCollection) {
	if r.toMany == nil {
		r.toMany = make(map[string]*LinkedResourceCollection)
	}
	r.toMany[name] = coll
}

// String returns "type/id" for the resource.
func (r *Resource) String() string {
	return r.Identifier().String()
}

// LinkedResourceCollection is the value of a to-many relationship.
// Linkage holds the raw identifiers declared by the server; Resources is
// populated only if resolution against the pass's resource pool succeeds.
type LinkedResourceCollection struct {
	// ResourcesURL is the relationship's related link, if present.
	ResourcesURL *url.URL
	// LinkURL is the relationship's self link, if present.
	LinkURL *url.URL
	// Linkage is the declared resource identifiers, or nil when the
	// relationship carried links only.
	Linkage []ResourceIdentifier
	// Resources is the resolved resources, in linkage order, or nil when
	// no linkage entry resolved.
	Resources []*Resource
	// IsLoaded is true once at least one linkage entry resolved.
	IsLoaded bool
}

// Error is a server-reported error object. Server errors are data carried
// in a document, not failures of the deserialization itself.
type Error struct {
	// ID is a unique identifier for this occurrence of the problem.
	ID string
	// Status is the HTTP status code, expressed as a string.
	Status string
	// Code is the application-specific error code.
	Code string
	// Message is the short human-readable summary (the wire title).
	Message string
	// Detail is the occurrence-specific explanation, if any.
	Detail string
	// Pointer locates the offending document member, if reported.
	Pointer string
	// Meta holds non-standard meta-information about the error.
	Meta map[string]interface{}
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Document is the assembled result of one deserialization pass.
// Data and Errors are mutually exclusive; a document carries at least one
// of Data, Errors, Meta.
type Document struct {
	// Data is the primary resources, or nil if the document carried none.
	Data []*Resource
	// Included is the side-loaded resources, or nil.
	Included []*Resource
	// Errors is the server-reported errors, or nil.
	Errors []*Error
	// Meta is the top-level meta block, or nil.
	Meta map[string]interface{}
	// Links is the top-level links, keyed by link name.
	Links map[string]*url.URL
	// Info is the top-level jsonapi implementation block, or nil.
	Info map[string]interface{}
}

// First returns the first primary resource, or nil for an empty document.
func (d *Document) First() *Resource {
	if len(d.Data) == 0 {
		return nil
	}
	return d.Data[0]
}

// IsErrorDocument reports whether the document carries server errors.
func (d *Document) IsErrorDocument() bool {
	return len(d.Errors) > 0
}

// ResourceFor returns the primary or included resource matching the given
// identifier, or nil if the document holds none.
func (d *Document) ResourceFor(ident ResourceIdentifier) *Resource {
	for _, r := range d.Data {
		if r.Type == ident.Type && r.ID == ident.ID {
			return r
		}
	}
	for _, r := range d.Included {
		if r.Type == ident.Type && r.ID == ident.ID {
			return r
		}
	}
	return nil
}
