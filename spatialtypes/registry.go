package spatialtypes

import (
	"errors"
	"sync"
)

// ColumnConfig carries the raw attributes of one spatial column as reported
// by schema introspection. SRID arrives in textual form and runs through the
// same coercion path as manual construction.
type ColumnConfig struct {
	Kind      GeometryKindString
	SRIDText  string
	Dimension int
}

// Constructor is a type alias for a column type factory consulted during
// schema reflection.
type Constructor = func(config ColumnConfig) (ColumnType, error)

// Registry maps database-reported type names to column type constructors.
// It replaces import-time global registration with an explicit step during
// application setup; the mutex makes concurrent startup paths safe.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register installs a constructor under the given reported type name.
// Re-registering a name is not an error; the last registration wins.
func (r *Registry) Register(typeName string, constructor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.constructors[typeName] = constructor
}

// Lookup returns the constructor registered under the given reported type name.
func (r *Registry) Lookup(typeName string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	constructor, found := r.constructors[typeName]

	return constructor, found
}

// Len returns the number of registered type names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.constructors)
}

// Build resolves the reported type name and runs its constructor.
// Returns ErrUnknownColumnType when no constructor is registered for the name.
func (r *Registry) Build(typeName string, config ColumnConfig) (ColumnType, error) {
	constructor, found := r.Lookup(typeName)
	if !found {
		return nil, errors.Join(ErrUnknownColumnType, errors.New("reported type name: "+typeName))
	}

	return constructor(config)
}

// RegisterSpatialTypes installs the constructors for the three spatial
// column types under the names the database reports during introspection.
// It is idempotent and safe to call multiple times; the registrations of the
// last call win.
func RegisterSpatialTypes(registry *Registry) error {
	if registry == nil {
		return ErrNilRegistry
	}

	registry.Register(TypeNameGeometry, func(config ColumnConfig) (ColumnType, error) {
		return NewGeometry(gisOptionsFromConfig(config)...)
	})

	registry.Register(TypeNameGeography, func(config ColumnConfig) (ColumnType, error) {
		return NewGeography(gisOptionsFromConfig(config)...)
	})

	registry.Register(TypeNameRaster, func(_ ColumnConfig) (ColumnType, error) {
		return NewRaster(), nil
	})

	return nil
}

func gisOptionsFromConfig(config ColumnConfig) []GISOption {
	options := make([]GISOption, 0)

	if config.Kind != "" {
		options = append(options, WithKind(config.Kind))
	}

	if config.SRIDText != "" {
		options = append(options, WithSRIDText(config.SRIDText))
	}

	if config.Dimension > 0 {
		options = append(options, WithDimension(config.Dimension))
	}

	return options
}
