package jsonapi

import "log/slog"

// relationshipResolver is the second pass: it walks the completed pool and
// fills to-many relationship references from previously extracted linkage.
// It must only run once every primary and included resource has been
// extracted, since linkage may point forward into included data or at
// mapping targets.
type relationshipResolver struct {
	pool   *ResourcePool
	logger *slog.Logger
}

// resolve fills each pooled resource's to-many collections. Unresolvable
// relationships are an expected condition (data to be fetched separately)
// and are only traced, never reported as errors.
func (r *relationshipResolver) resolve() {
	for _, res := range r.pool.All() {
		for _, f := range res.Fields {
			rel, ok := f.(ToManyRelationship)
			if !ok {
				continue
			}
			coll, ok := res.ToMany(rel.Name())
			if !ok || coll == nil {
				r.logger.Debug("skipping to-many relationship without extracted collection",
					slog.String("resource", res.String()),
					slog.String("relationship", rel.Name()))
				continue
			}
			if coll.Linkage == nil {
				r.logger.Debug("skipping link-only to-many relationship, foreign ids unknown",
					slog.String("resource", res.String()),
					slog.String("relationship", rel.Name()))
				continue
			}
			// Replace, never extend: a collection kept on a mapping target
			// may still hold results resolved during an earlier pass.
			var resolved []*Resource
			for _, ident := range coll.Linkage {
				for _, candidate := range r.pool.All() {
					if candidate.Type == ident.Type && candidate.ID == ident.ID {
						resolved = append(resolved, candidate)
					}
				}
			}
			coll.Resources = resolved
			coll.IsLoaded = len(resolved) > 0
		}
	}
}
