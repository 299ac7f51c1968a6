package gen

import "github.com/go-openapi/inflect"

// Config holds the generation settings shared by all entities in a pass.
type Config struct {
	// Header is an optional comment block added at the top of the
	// generated document.
	Header string
	// Import is the module specifier used in the import preamble.
	Import string
	// Namespace is the base schema namespace token.
	Namespace string
	// Suffix is appended to every generated schema identifier.
	Suffix string
}

// Option configures schema generation.
type Option func(*Config) error

// WithHeader sets the document header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithImport sets the module specifier of the import preamble.
// For example: "zod" or "zod/v4".
func WithImport(module string) Option {
	return func(c *Config) error {
		if module == "" {
			return NewConfigError("Import", nil, "import module cannot be empty")
		}
		c.Import = module
		return nil
	}
}

// WithNamespace sets the base schema namespace token.
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		if ns == "" {
			return NewConfigError("Namespace", nil, "namespace cannot be empty")
		}
		c.Namespace = ns
		return nil
	}
}

// WithSuffix sets the suffix appended to generated schema identifiers.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("Suffix", nil, "suffix cannot be empty")
		}
		c.Suffix = suffix
		return nil
	}
}

// NewConfig creates a Config with the given options applied over defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Import:    "zod",
		Namespace: "z",
		Suffix:    "Schema",
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ident derives the exported identifier form of a model name.
func (c *Config) ident(name string) string {
	return inflect.Camelize(name)
}

// schemaName returns the object-schema identifier for a model name.
// The same derivation applies to entity and enum names.
func (c *Config) schemaName(name string) string {
	return c.ident(name) + c.Suffix
}

func (c *Config) whereName(name string) string {
	return c.ident(name) + "Where" + c.Suffix
}

// whereObjectName is the identifier of the filter-predicate object body
// backing the lazily resolved alias returned by whereName.
func (c *Config) whereObjectName(name string) string {
	return c.ident(name) + "WhereObject" + c.Suffix
}

func (c *Config) whereUniqueName(name string) string {
	return c.ident(name) + "WhereUnique" + c.Suffix
}

func (c *Config) includeName(name string) string {
	return c.ident(name) + "Include" + c.Suffix
}

func (c *Config) createInputName(name string) string {
	return c.ident(name) + "CreateInput" + c.Suffix
}

func (c *Config) updateInputName(name string) string {
	return c.ident(name) + "UpdateInput" + c.Suffix
}

func (c *Config) findManyName(name string) string {
	return c.ident(name) + "FindMany" + c.Suffix
}

func (c *Config) findUniqueName(name string) string {
	return c.ident(name) + "FindUnique" + c.Suffix
}

func (c *Config) createArgsName(name string) string {
	return c.ident(name) + "Create" + c.Suffix
}

func (c *Config) updateArgsName(name string) string {
	return c.ident(name) + "Update" + c.Suffix
}

func (c *Config) deleteArgsName(name string) string {
	return c.ident(name) + "Delete" + c.Suffix
}
