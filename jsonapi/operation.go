package jsonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// OperationState identifies the lifecycle state of a DeserializeOperation.
type OperationState uint8

const (
	// StatePending means the operation has not run yet.
	StatePending OperationState = iota
	// StateRunning means the operation is executing.
	StateRunning
	// StateSucceeded means the operation produced a Document.
	StateSucceeded
	// StateFailed means the operation aborted with an error.
	StateFailed
	// StateCancelled means the operation observed context cancellation.
	StateCancelled
)

// String returns the state name.
func (s OperationState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DeserializeOperation deserializes one JSON:API document into a Document.
// An operation is a single unit of work: it owns its pool, runs with no
// internal concurrency, and is terminal once it leaves the running state.
// Operations must not be shared across goroutines; run separate operations
// for concurrent documents.
type DeserializeOperation struct {
	raw          []byte
	factory      ResourceFactory
	transformers TransformerDirectory
	logger       *slog.Logger

	id    uuid.UUID
	pool  *ResourcePool
	state OperationState
	doc   *Document
	err   error
}

// NewDeserializeOperation creates an operation over one raw document.
func NewDeserializeOperation(data []byte, opts ...Option) *DeserializeOperation {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	op := &DeserializeOperation{
		raw:          data,
		factory:      options.Factory,
		transformers: options.Transformers,
		logger:       options.Logger,
		id:           uuid.New(),
		pool:         newResourcePool(),
	}
	op.logger = op.logger.With(slog.String("operation_id", op.id.String()))
	op.AddMappingTargets(options.MappingTargets...)
	return op
}

// AddMappingTargets seeds the pool with existing resource objects before the
// operation runs, so matching representations update them in place instead
// of allocating new objects. Has no effect once the operation has started.
func (op *DeserializeOperation) AddMappingTargets(targets ...*Resource) {
	if op.state != StatePending {
		return
	}
	op.pool.Seed(targets...)
}

// State returns the operation's current lifecycle state.
func (op *DeserializeOperation) State() OperationState {
	return op.state
}

// Run executes the operation: document validation, primary and included
// extraction, top-level error/meta/links/info extraction, relationship
// resolution, final assembly. The first extraction error aborts the whole
// operation; no partial Document is returned. Cancellation is checked
// between top-level steps. Run is terminal: calling it again returns the
// recorded outcome.
func (op *DeserializeOperation) Run(ctx context.Context) (*Document, error) {
	switch op.state {
	case StateSucceeded:
		return op.doc, nil
	case StateFailed, StateCancelled:
		return nil, op.err
	case StateRunning:
		return nil, fmt.Errorf("jsonapi: operation already running")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	op.state = StateRunning
	op.logger.Debug("deserialize operation started", slog.Int("bytes", len(op.raw)))

	root, err := op.validate()
	if err != nil {
		return nil, op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, op.cancel(err)
	}

	primary, err := op.extractPrimary(root)
	if err != nil {
		return nil, op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, op.cancel(err)
	}

	included, err := op.extractIncluded(root)
	if err != nil {
		return nil, op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, op.cancel(err)
	}

	doc := &Document{
		Errors: extractErrors(root),
		Meta:   extractObject(root, "meta"),
		Info:   extractObject(root, "jsonapi"),
	}
	links, err := extractLinks(root)
	if err != nil {
		return nil, op.fail(err)
	}
	doc.Links = links
	if err := ctx.Err(); err != nil {
		return nil, op.cancel(err)
	}

	resolver := &relationshipResolver{pool: op.pool, logger: op.logger}
	resolver.resolve()

	if len(primary) > 0 {
		doc.Data = primary
	}
	if len(included) > 0 {
		doc.Included = included
	}

	op.state = StateSucceeded
	op.doc = doc
	op.logger.Debug("deserialize operation succeeded",
		slog.Int("primary", len(doc.Data)),
		slog.Int("included", len(doc.Included)),
		slog.Int("pooled", op.pool.Len()))
	return doc, nil
}

func (op *DeserializeOperation) fail(err error) error {
	op.state = StateFailed
	op.err = err
	op.logger.Debug("deserialize operation failed",
		slog.String("code", string(Code(err))),
		slog.String("error", err.Error()))
	return err
}

func (op *DeserializeOperation) cancel(err error) error {
	op.state = StateCancelled
	op.err = err
	op.logger.Debug("deserialize operation cancelled")
	return err
}

// validate parses the raw input and checks whole-document shape: the root
// must be an object holding at least one of data, errors, meta, and never
// data and errors together. A JSON null counts as absent here, so an
// explicit "data": null alongside errors is accepted.
func (op *DeserializeOperation) validate() (map[string]interface{}, error) {
	var parsed interface{}
	if err := json.Unmarshal(op.raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocumentStructure, err)
	}
	root, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: root is not an object", ErrInvalidDocumentStructure)
	}
	hasData := present(root, "data")
	hasErrors := present(root, "errors")
	hasMeta := present(root, "meta")
	if !hasData && !hasErrors && !hasMeta {
		return nil, fmt.Errorf("%w: none of data, errors, meta present", ErrInvalidDocumentStructure)
	}
	if hasData && hasErrors {
		return nil, fmt.Errorf("%w: data and errors are mutually exclusive", ErrInvalidDocumentStructure)
	}
	return root, nil
}

// present reports whether key holds a non-null value.
func present(root map[string]interface{}, key string) bool {
	v, ok := root[key]
	return ok && v != nil
}

func (op *DeserializeOperation) extractPrimary(root map[string]interface{}) ([]*Resource, error) {
	rd := &resourceDeserializer{factory: op.factory, transformers: op.transformers, pool: op.pool}
	switch data := root["data"].(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		// Singular primary data maps onto the first mapping target.
		res, err := rd.deserialize(data, 0)
		if err != nil {
			return nil, wrapDeserializeError("/data", err)
		}
		return []*Resource{res}, nil
	case []interface{}:
		resources := make([]*Resource, 0, len(data))
		for i, item := range data {
			res, err := rd.deserialize(item, -1)
			if err != nil {
				return nil, wrapDeserializeError("/data/"+strconv.Itoa(i), err)
			}
			resources = append(resources, res)
		}
		return resources, nil
	default:
		return nil, wrapDeserializeError("/data", ErrInvalidResourceStructure)
	}
}

func (op *DeserializeOperation) extractIncluded(root map[string]interface{}) ([]*Resource, error) {
	raw, ok := root["included"].([]interface{})
	if !ok {
		return nil, nil
	}
	rd := &resourceDeserializer{factory: op.factory, transformers: op.transformers, pool: op.pool}
	resources := make([]*Resource, 0, len(raw))
	for i, item := range raw {
		res, err := rd.deserialize(item, -1)
		if err != nil {
			return nil, wrapDeserializeError("/included/"+strconv.Itoa(i), err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// extractErrors maps server-reported error objects. These are data carried
// by the document, not failures of the operation, so extraction is lenient:
// malformed entries are skipped.
func extractErrors(root map[string]interface{}) []*Error {
	raw, ok := root["errors"].([]interface{})
	if !ok {
		return nil
	}
	errs := make([]*Error, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		e := &Error{}
		e.ID, _ = obj["id"].(string)
		e.Status, _ = obj["status"].(string)
		e.Code, _ = obj["code"].(string)
		e.Message, _ = obj["title"].(string)
		e.Detail, _ = obj["detail"].(string)
		if e.Message == "" {
			e.Message = e.Detail
		}
		if source, ok := obj["source"].(map[string]interface{}); ok {
			e.Pointer, _ = source["pointer"].(string)
		}
		if meta, ok := obj["meta"].(map[string]interface{}); ok {
			e.Meta = meta
		}
		errs = append(errs, e)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// extractLinks parses the top-level links map. Link values may be strings
// or objects carrying an href; anything else, or an unparsable URL, fails
// the operation.
func extractLinks(root map[string]interface{}) (map[string]*url.URL, error) {
	raw, ok := root["links"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	links := make(map[string]*url.URL, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		var href string
		switch v := value.(type) {
		case string:
			href = v
		case map[string]interface{}:
			href, _ = v["href"].(string)
		}
		if href == "" {
			return nil, wrapDeserializeError("/links/"+key, ErrInvalidURL)
		}
		u, err := parseURL(href)
		if err != nil {
			return nil, wrapDeserializeError("/links/"+key, err)
		}
		links[key] = u
	}
	return links, nil
}

func extractObject(root map[string]interface{}, key string) map[string]interface{} {
	obj, _ := root[key].(map[string]interface{})
	return obj
}
