package jsonapi

import (
	"fmt"
	"net/url"
)

// resourceDeserializer converts one JSON resource representation into a
// populated Resource, growing the pass's pool as a side effect.
type resourceDeserializer struct {
	factory      ResourceFactory
	transformers TransformerDirectory
	pool         *ResourcePool
}

// deserialize extracts a single resource representation. A non-negative
// targetIndex hints which mapping target the representation updates in place.
func (d *resourceDeserializer) deserialize(raw interface{}, targetIndex int) (*Resource, error) {
	repr, ok := raw.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidResourceStructure
	}

	typ, ok := repr["type"].(string)
	if !ok {
		return nil, ErrResourceTypeMissing
	}
	id, ok := repr["id"].(string)
	if !ok {
		return nil, ErrResourceIDMissing
	}

	res, err := d.factory.Dispense(typ, id, d.pool, targetIndex)
	if err != nil {
		return nil, err
	}
	res.ID = id

	if links, ok := repr["links"].(map[string]interface{}); ok {
		if self, ok := links["self"].(string); ok {
			u, err := parseURL(self)
			if err != nil {
				return nil, wrapDeserializeError("links/self", err)
			}
			res.URL = u
		}
	}
	if meta, ok := repr["meta"].(map[string]interface{}); ok {
		res.Meta = meta
	}

	if err := d.extractAttributes(repr, res); err != nil {
		return nil, err
	}
	if err := d.extractRelationships(repr, res); err != nil {
		return nil, err
	}

	res.IsLoaded = true
	return res, nil
}

// extractAttributes applies each declared attribute present in the
// representation. An absent key and an explicit null both leave the target
// field untouched; only non-null values pass through the transformer
// directory.
func (d *resourceDeserializer) extractAttributes(repr map[string]interface{}, res *Resource) error {
	attrs, _ := repr["attributes"].(map[string]interface{})
	if attrs == nil {
		return nil
	}
	for _, f := range res.Fields {
		attr, ok := f.(Attribute)
		if !ok {
			continue
		}
		raw, present := attrs[attr.SerializedName()]
		if !present || raw == nil {
			continue
		}
		value, err := d.transformers.Deserialize(raw, attr)
		if err != nil {
			return wrapDeserializeError("attributes/"+attr.SerializedName(), err)
		}
		res.SetAttribute(attr.Name(), value)
	}
	return nil
}

func (d *resourceDeserializer) extractRelationships(repr map[string]interface{}, res *Resource) error {
	rels, _ := repr["relationships"].(map[string]interface{})
	if rels == nil {
		return nil
	}
	for _, f := range res.Fields {
		switch rel := f.(type) {
		case ToOneRelationship:
			block, ok := rels[rel.SerializedName()].(map[string]interface{})
			if !ok {
				continue
			}
			if err := d.extractToOne(block, rel, res); err != nil {
				return wrapDeserializeError("relationships/"+rel.SerializedName(), err)
			}
		case ToManyRelationship:
			block, ok := rels[rel.SerializedName()].(map[string]interface{})
			if !ok {
				continue
			}
			if err := d.extractToMany(block, rel, res); err != nil {
				return wrapDeserializeError("relationships/"+rel.SerializedName(), err)
			}
		}
	}
	return nil
}

// extractToOne dispenses the linked resource eagerly: a to-one target is a
// single identity, so it can share the pool's object immediately. Linkage
// without an id produces an identity-less stub carrying only the related
// link URL.
func (d *resourceDeserializer) extractToOne(block map[string]interface{}, rel ToOneRelationship, res *Resource) error {
	linkedType := rel.LinkedType
	var linked *Resource

	if data, ok := block["data"].(map[string]interface{}); ok {
		if t, ok := data["type"].(string); ok && t != "" {
			linkedType = t
		}
		if id, ok := data["id"].(string); ok && id != "" {
			var err error
			linked, err = d.factory.Dispense(linkedType, id, d.pool, -1)
			if err != nil {
				return err
			}
		}
	}
	if linked == nil {
		var err error
		linked, err = d.factory.Instantiate(linkedType)
		if err != nil {
			return err
		}
	}

	if links, ok := block["links"].(map[string]interface{}); ok {
		if related, ok := links["related"].(string); ok {
			u, err := parseURL(related)
			if err != nil {
				return wrapDeserializeError("links/related", err)
			}
			linked.URL = u
		}
	}

	res.SetToOne(rel.Name(), linked)
	return nil
}

// extractToMany never dispenses targets: linkage is recorded as identifiers
// and resolved by the second pass, once the whole pool exists, so that
// forward references into included data and mapping targets work.
func (d *resourceDeserializer) extractToMany(block map[string]interface{}, rel ToManyRelationship, res *Resource) error {
	coll := &LinkedResourceCollection{}

	if links, ok := block["links"].(map[string]interface{}); ok {
		if related, ok := links["related"].(string); ok {
			u, err := parseURL(related)
			if err != nil {
				return wrapDeserializeError("links/related", err)
			}
			coll.ResourcesURL = u
		}
		if self, ok := links["self"].(string); ok {
			u, err := parseURL(self)
			if err != nil {
				return wrapDeserializeError("links/self", err)
			}
			coll.LinkURL = u
		}
	}

	if data, ok := block["data"].([]interface{}); ok {
		linkage := make([]ResourceIdentifier, 0, len(data))
		for _, entry := range data {
			ident, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			typ, _ := ident["type"].(string)
			id, _ := ident["id"].(string)
			linkage = append(linkage, ResourceIdentifier{Type: typ, ID: id})
		}
		coll.Linkage = linkage
	}

	res.SetToMany(rel.Name(), coll)
	return nil
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	return u, nil
}
