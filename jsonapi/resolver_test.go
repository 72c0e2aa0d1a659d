package jsonapi

import (
	"io"
	"log/slog"
	"testing"
)

func newTestResolver(pool *ResourcePool) *relationshipResolver {
	return &relationshipResolver{pool: pool, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestResolveFillsCollectionsInLinkageOrder(t *testing.T) {
	tagFields := []Field{Attribute{FieldName: "label", Type: ValueString}}
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	article.SetToMany("tags", &LinkedResourceCollection{
		Linkage: []ResourceIdentifier{{Type: "tags", ID: "2"}, {Type: "tags", ID: "1"}},
	})
	tag1 := &Resource{Type: "tags", ID: "1", Fields: tagFields}
	tag2 := &Resource{Type: "tags", ID: "2", Fields: tagFields}

	pool := newResourcePool()
	pool.Add(article)
	pool.Add(tag1)
	pool.Add(tag2)
	newTestResolver(pool).resolve()

	coll, _ := article.ToMany("tags")
	if !coll.IsLoaded {
		t.Fatal("expected collection loaded")
	}
	if len(coll.Resources) != 2 {
		t.Fatalf("expected 2 resolved resources, got %d", len(coll.Resources))
	}
	if coll.Resources[0] != tag2 || coll.Resources[1] != tag1 {
		t.Fatal("expected resolution in linkage order")
	}
}

func TestResolveReplacesEarlierResults(t *testing.T) {
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	stale := &Resource{Type: "tags", ID: "1"}
	article.SetToMany("tags", &LinkedResourceCollection{
		Linkage:   []ResourceIdentifier{{Type: "tags", ID: "1"}},
		Resources: []*Resource{stale},
		IsLoaded:  true,
	})
	fresh := &Resource{Type: "tags", ID: "1"}

	pool := newResourcePool()
	pool.Add(article)
	pool.Add(fresh)
	newTestResolver(pool).resolve()

	coll, _ := article.ToMany("tags")
	if len(coll.Resources) != 1 {
		t.Fatalf("expected 1 resolved resource, got %d", len(coll.Resources))
	}
	if coll.Resources[0] != fresh {
		t.Fatal("expected the pooled object, not the stale one")
	}
	if !coll.IsLoaded {
		t.Fatal("expected collection loaded")
	}
}

func TestResolveUnloadsWhenNothingMatches(t *testing.T) {
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	article.SetToMany("tags", &LinkedResourceCollection{
		Linkage:   []ResourceIdentifier{{Type: "tags", ID: "404"}},
		Resources: []*Resource{{Type: "tags", ID: "404"}},
		IsLoaded:  true,
	})

	pool := newResourcePool()
	pool.Add(article)
	newTestResolver(pool).resolve()

	coll, _ := article.ToMany("tags")
	if coll.Resources != nil {
		t.Fatal("expected no resolved resources")
	}
	if coll.IsLoaded {
		t.Fatal("expected collection unloaded")
	}
}

func TestResolveSkipsLinkOnlyCollections(t *testing.T) {
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	article.SetToMany("tags", &LinkedResourceCollection{})

	pool := newResourcePool()
	pool.Add(article)
	newTestResolver(pool).resolve()

	coll, _ := article.ToMany("tags")
	if coll.IsLoaded {
		t.Fatal("link-only collection must stay unloaded")
	}
	if coll.Resources != nil {
		t.Fatal("link-only collection must have no resources")
	}
}

func TestResolveSkipsMissingCollections(t *testing.T) {
	// A declared to-many field that extraction never populated must not
	// panic or error; resolution simply skips it.
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	pool := newResourcePool()
	pool.Add(article)
	newTestResolver(pool).resolve()

	if _, ok := article.ToMany("tags"); ok {
		t.Fatal("unexpected collection")
	}
}

func TestResolveEmptyLinkage(t *testing.T) {
	article := &Resource{
		Type: "articles", ID: "1",
		Fields: []Field{ToManyRelationship{FieldName: "tags", LinkedType: "tags"}},
	}
	article.SetToMany("tags", &LinkedResourceCollection{Linkage: []ResourceIdentifier{}})

	pool := newResourcePool()
	pool.Add(article)
	newTestResolver(pool).resolve()

	coll, _ := article.ToMany("tags")
	if coll.IsLoaded {
		t.Fatal("empty linkage resolves nothing")
	}
}
