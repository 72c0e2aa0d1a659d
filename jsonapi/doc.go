// Package jsonapi deserializes JSON:API response documents into an
// in-memory object graph.
//
// It covers the read side only: structural validation of the raw document,
// identity-aware resource materialization (one in-memory object per
// (type, id) within a pass), attribute extraction through a pluggable
// transformer directory, and two-pass relationship linking that resolves
// to-one and to-many relationships against the pool of resources assembled
// during the same pass. Serialization, transport, and request construction
// are out of scope.
//
// Resource types are declared up front on a Registry, which doubles as the
// default ResourceFactory:
//
//	registry := jsonapi.NewRegistry()
//	registry.RegisterType("people",
//	    jsonapi.Attribute{FieldName: "name", Type: jsonapi.ValueString},
//	)
//	registry.RegisterType("articles",
//	    jsonapi.Attribute{FieldName: "title", Type: jsonapi.ValueString},
//	    jsonapi.ToOneRelationship{FieldName: "author", LinkedType: "people"},
//	    jsonapi.ToManyRelationship{FieldName: "comments", LinkedType: "comments"},
//	)
//
// Deserializing a document:
//
//	doc, err := jsonapi.Deserialize(ctx, body, jsonapi.OptFactory(registry))
//	if err != nil {
//	    // handle error; jsonapi.Code(err) yields a programmatic code
//	}
//	for _, res := range doc.Data {
//	    // process resources
//	}
//
// To update already loaded objects in place instead of allocating new ones,
// seed the pass with mapping targets:
//
//	doc, err := jsonapi.Deserialize(ctx, body,
//	    jsonapi.OptFactory(registry),
//	    jsonapi.OptMappingTargets(existing))
//
// Relationship data that cannot be resolved within the document (foreign
// ids, link-only relationships) is an expected condition: the affected
// collections simply stay unloaded, to be fetched separately. Server error
// documents are data, not failures; they are returned on Document.Errors.
//
// A DeserializeOperation is a single unit of work with no internal
// concurrency. Run concurrent documents through separate operations; the
// factory and transformer directory are the only collaborators shared
// between passes and must be stateless or internally synchronized.
package jsonapi
