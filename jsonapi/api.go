package jsonapi

import (
	"context"
	"io"
	"log/slog"
)

// Option configures deserialization behavior.
type Option func(*Options)

// Options configures a deserialization pass.
type Options struct {
	// Logger receives debug-level diagnostics. Discarded by default.
	Logger *slog.Logger

	// Factory constructs and pools resource objects.
	Factory ResourceFactory

	// Transformers converts raw attribute values to domain values.
	Transformers TransformerDirectory

	// MappingTargets seeds the pool with existing objects to update in place.
	MappingTargets []*Resource
}

// Deserialize parses a raw JSON:API document and returns the assembled
// Document. It is a convenience wrapper over DeserializeOperation for the
// common single-shot case. If ctx is nil, context.Background() is used.
func Deserialize(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	op := NewDeserializeOperation(data, opts...)
	return op.Run(ctx)
}

// Option helpers

// OptLogger sets the logger for debug diagnostics.
func OptLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// OptFactory sets the resource factory. The default is an empty, lenient
// Registry: unregistered types materialize with no declared fields.
func OptFactory(factory ResourceFactory) Option {
	return func(opts *Options) {
		if factory != nil {
			opts.Factory = factory
		}
	}
}

// OptTransformers sets the transformer directory. The default directory
// dispatches on each attribute's declared ValueType.
func OptTransformers(directory TransformerDirectory) Option {
	return func(opts *Options) {
		if directory != nil {
			opts.Transformers = directory
		}
	}
}

// OptMappingTargets seeds the operation's pool with existing resource
// objects, so representations matching their identity update them in place
// rather than allocating new objects.
func OptMappingTargets(targets ...*Resource) Option {
	return func(opts *Options) {
		opts.MappingTargets = append(opts.MappingTargets, targets...)
	}
}

// Internal helpers

func defaultOptions() Options {
	return Options{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Factory:      NewRegistry(),
		Transformers: NewTransformerDirectory(),
	}
}
