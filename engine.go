package bumerge

import (
	"errors"
	"fmt"
	"log/slog"

	"go.jacobcolvin.com/bumerge/merge"
	"go.jacobcolvin.com/bumerge/schema"
	"go.jacobcolvin.com/bumerge/schema/fcos"
	"go.jacobcolvin.com/bumerge/value"
)

// Sentinel errors returned by the engine.
var (
	// ErrRead matches every [*ReadError].
	ErrRead = errors.New("read source")
	// ErrNotMapping indicates a source whose top level is not a mapping.
	ErrNotMapping = errors.New("document is not a mapping")
)

var defaultRegistry = schema.NewRegistry(fcos.Entry())

// DefaultRegistry returns the registry of built-in models.
func DefaultRegistry() *schema.Registry {
	return defaultRegistry
}

// Source is one input document.
type Source struct {
	// Name identifies the source in errors and logs, typically a file path.
	Name string
	Data []byte
}

// ReadError reports a source that could not be loaded.
type ReadError struct {
	Cause  error
	Source string
}

// Error returns a human-readable error message.
func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrRead, e.Source, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReadError) Unwrap() error { return e.Cause }

// Is reports whether target matches this error type.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// Engine merges and validates configuration sources.
//
// Create instances with [NewEngine]. An Engine holds no per-run state and
// may be used concurrently.
type Engine struct {
	registry *schema.Registry
	logger   *slog.Logger
	ids      []identity
}

// Option configures an [Engine].
type Option func(*Engine)

// NewEngine creates an [Engine] with the given options. By default it uses
// [DefaultRegistry], [slog.Default] and no identity overrides.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: defaultRegistry,
		logger:   slog.Default(),
		ids: []identity{
			{field: schema.FieldVariant, flag: FlagVariant},
			{field: schema.FieldVersion, flag: FlagSchemaVersion},
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithRegistry sets the models available to the engine.
func WithRegistry(r *schema.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithVariant sets the variant used when no document sets one. An empty
// string means no override.
func WithVariant(variant string) Option {
	return func(e *Engine) {
		e.ids[0].requested = variant
	}
}

// WithVersion sets the version used when no document sets one. An empty
// string means no override.
func WithVersion(version string) Option {
	return func(e *Engine) {
		e.ids[1].requested = version
	}
}

// WithFlagNames sets the flag names reported in identity errors.
func WithFlagNames(variant, version string) Option {
	return func(e *Engine) {
		e.ids[0].flag = variant
		e.ids[1].flag = version
	}
}

// Run decodes sources, merges them in order, reconciles the identity fields
// and validates the result against the model they select.
//
// Sources that are empty or hold only null contribute nothing. Nothing is
// returned on failure.
func (e *Engine) Run(sources ...Source) (*schema.Document, error) {
	docs := make([]value.Value, 0, len(sources))

	for _, src := range sources {
		doc, err := e.decode(src)
		if err != nil {
			return nil, err
		}

		if doc != nil {
			docs = append(docs, doc)
		}
	}

	merged := merge.Merge(docs...)
	e.logger.Debug("merged sources",
		slog.Int("sources", len(sources)),
		slog.Int("keys", merged.Len()),
	)

	tree, err := reconcile(merged, e.ids)
	if err != nil {
		return nil, err
	}

	variant, _ := tree.Get(schema.FieldVariant)
	ver, _ := tree.Get(schema.FieldVersion)

	root, err := e.registry.Lookup(display(variant), display(ver))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("selected model",
		slog.String("variant", display(variant)),
		slog.String("version", display(ver)),
		slog.String("root", root.Name()),
	)

	doc, err := schema.Validate(tree, root)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("validated document", slog.Int("keys", doc.Root.Len()))

	return doc, nil
}

func (e *Engine) decode(src Source) (*value.Mapping, error) {
	v, err := value.Decode(src.Data)
	if err != nil {
		return nil, &ReadError{Source: src.Name, Cause: err}
	}

	e.logger.Debug("decoded source",
		slog.String("source", src.Name),
		slog.String("kind", v.Kind().String()),
	)

	switch doc := v.(type) {
	case *value.Mapping:
		return doc, nil
	case value.Null:
		return nil, nil
	}

	return nil, &ReadError{
		Source: src.Name,
		Cause:  fmt.Errorf("%w: found %s", ErrNotMapping, v.Kind()),
	}
}
