package jsonapi

// FieldKind identifies resource field descriptor types.
type FieldKind uint8

const (
	// KindAttribute represents a plain attribute field.
	KindAttribute FieldKind = iota
	// KindToOne represents a to-one relationship field.
	KindToOne
	// KindToMany represents a to-many relationship field.
	KindToMany
)

// Field describes one declared field of a resource type.
type Field interface {
	Kind() FieldKind
	Name() string
	// SerializedName returns the key the field is stored under on the wire.
	SerializedName() string
}

// ValueType identifies the domain type an attribute value deserializes to.
// It selects the transformer applied by the default transformer directory;
// custom directories are free to ignore it.
type ValueType uint8

const (
	// ValueRaw passes the raw decoded JSON value through untransformed.
	ValueRaw ValueType = iota
	// ValueString coerces to string.
	ValueString
	// ValueBool coerces to bool.
	ValueBool
	// ValueInt coerces to int64.
	ValueInt
	// ValueFloat coerces to float64.
	ValueFloat
	// ValueDate parses an RFC 3339 timestamp into time.Time.
	ValueDate
	// ValueURL parses into *url.URL.
	ValueURL
)

// Attribute is a field descriptor for a plain attribute.
type Attribute struct {
	// FieldName is the attribute's name on the resource object.
	FieldName string
	// Key is the serialized key, if it differs from FieldName.
	Key string
	// Type selects the value transformer for this attribute.
	Type ValueType
}

// Kind returns KindAttribute.
func (a Attribute) Kind() FieldKind { return KindAttribute }

// Name returns the attribute's field name.
func (a Attribute) Name() string { return a.FieldName }

// SerializedName returns Key, or FieldName if no key override is set.
func (a Attribute) SerializedName() string {
	if a.Key != "" {
		return a.Key
	}
	return a.FieldName
}

// ToOneRelationship is a field descriptor for a to-one relationship.
type ToOneRelationship struct {
	// FieldName is the relationship's name on the resource object.
	FieldName string
	// Key is the serialized key, if it differs from FieldName.
	Key string
	// LinkedType is the statically declared type of the linked resource,
	// used when the relationship linkage carries no type of its own.
	LinkedType string
}

// Kind returns KindToOne.
func (r ToOneRelationship) Kind() FieldKind { return KindToOne }

// Name returns the relationship's field name.
func (r ToOneRelationship) Name() string { return r.FieldName }

// SerializedName returns Key, or FieldName if no key override is set.
func (r ToOneRelationship) SerializedName() string {
	if r.Key != "" {
		return r.Key
	}
	return r.FieldName
}

// ToManyRelationship is a field descriptor for a to-many relationship.
type ToManyRelationship struct {
	// FieldName is the relationship's name on the resource object.
	FieldName string
	// Key is the serialized key, if it differs from FieldName.
	Key string
	// LinkedType is the statically declared type of the linked resources.
	LinkedType string
}

// Kind returns KindToMany.
func (r ToManyRelationship) Kind() FieldKind { return KindToMany }

// Name returns the relationship's field name.
func (r ToManyRelationship) Name() string { return r.FieldName }

// SerializedName returns Key, or FieldName if no key override is set.
func (r ToManyRelationship) SerializedName() string {
	if r.Key != "" {
		return r.Key
	}
	return r.FieldName
}
