package load

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/relgraph/model"
)

// Document is the serialized form of a schema.
type Document struct {
	// Version of the snapshot format. YAML documents leave it unset.
	Version   int         `yaml:"version,omitempty" msgpack:"version"`
	Name      string      `yaml:"name,omitempty" msgpack:"name,omitempty"`
	Databases []*Database `yaml:"databases,omitempty" msgpack:"databases,omitempty"`
}

// Database is a serialized model.Database. The "platform" attribute names
// the dialect used to resolve column types.
type Database struct {
	Attrs     map[string]string   `yaml:",inline" msgpack:"attrs,omitempty"`
	Domains   []map[string]string `yaml:"domains,omitempty" msgpack:"domains,omitempty"`
	Tables    []*Table            `yaml:"tables,omitempty" msgpack:"tables,omitempty"`
	Behaviors []*Behavior         `yaml:"behaviors,omitempty" msgpack:"behaviors,omitempty"`
	Vendor    []*Vendor           `yaml:"vendor,omitempty" msgpack:"vendor,omitempty"`
}

// Table is a serialized model.Table.
type Table struct {
	Attrs       map[string]string `yaml:",inline" msgpack:"attrs,omitempty"`
	Columns     []*Column         `yaml:"columns,omitempty" msgpack:"columns,omitempty"`
	ForeignKeys []*ForeignKey     `yaml:"foreignKeys,omitempty" msgpack:"foreign_keys,omitempty"`
	Indices     []*Index          `yaml:"indices,omitempty" msgpack:"indices,omitempty"`
	Uniques     []*Index          `yaml:"uniques,omitempty" msgpack:"uniques,omitempty"`
	Behaviors   []*Behavior       `yaml:"behaviors,omitempty" msgpack:"behaviors,omitempty"`
	Vendor      []*Vendor         `yaml:"vendor,omitempty" msgpack:"vendor,omitempty"`
}

// Column is a serialized model.Column.
type Column struct {
	Attrs        map[string]string   `yaml:",inline" msgpack:"attrs,omitempty"`
	ValueSet     List                `yaml:"valueSet,omitempty" msgpack:"value_set,omitempty"`
	Inheritances []map[string]string `yaml:"inheritances,omitempty" msgpack:"inheritances,omitempty"`
	Vendor       []*Vendor           `yaml:"vendor,omitempty" msgpack:"vendor,omitempty"`
}

// ForeignKey is a serialized model.ForeignKey. Each reference holds a
// "local" and a "foreign" column name.
type ForeignKey struct {
	Attrs      map[string]string   `yaml:",inline" msgpack:"attrs,omitempty"`
	References []map[string]string `yaml:"references,omitempty" msgpack:"references,omitempty"`
	Vendor     []*Vendor           `yaml:"vendor,omitempty" msgpack:"vendor,omitempty"`
}

// Index is a serialized model.Index.
type Index struct {
	Attrs   map[string]string `yaml:",inline" msgpack:"attrs,omitempty"`
	Columns []IndexColumn     `yaml:"columns,omitempty" msgpack:"columns,omitempty"`
	Vendor  []*Vendor         `yaml:"vendor,omitempty" msgpack:"vendor,omitempty"`
}

// IndexColumn is a column of an index with an optional prefix size. In
// YAML a plain scalar is accepted for unsized columns.
type IndexColumn struct {
	Name string `yaml:"name" msgpack:"name"`
	Size int    `yaml:"size,omitempty" msgpack:"size,omitempty"`
}

// Behavior is a serialized model.Behavior.
type Behavior struct {
	Attrs      map[string]string `yaml:",inline" msgpack:"attrs,omitempty"`
	Parameters Parameters        `yaml:"parameters,omitempty" msgpack:"parameters,omitempty"`
}

// Vendor is a serialized model.VendorInfo.
type Vendor struct {
	Type       string     `yaml:"type" msgpack:"type"`
	Parameters Parameters `yaml:"parameters,omitempty" msgpack:"parameters,omitempty"`
}

// Parameter is a name/value pair.
type Parameter struct {
	Name  string `msgpack:"name"`
	Value string `msgpack:"value"`
}

// Parameters keep their declaration order. In YAML they are written as a
// mapping.
type Parameters []Parameter

// List is a list of strings. In YAML it may also be written as a comma
// separated scalar.
type List []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *IndexColumn) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Name = value.Value
		return nil
	}
	type plain IndexColumn
	return value.Decode((*plain)(c))
}

// MarshalYAML implements yaml.Marshaler.
func (c IndexColumn) MarshalYAML() (any, error) {
	if c.Size == 0 {
		return c.Name, nil
	}
	type plain IndexColumn
	return plain(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Parameters) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: parameter %q must be a scalar", v.Line, k.Value)
		}
		*p = append(*p, Parameter{Name: k.Value, Value: v.Value})
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Parameters) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, pa := range p {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: pa.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pa.Value},
		)
	}
	return n, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *List) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = model.Attributes{"v": value.Value}.List("v")
		return nil
	}
	var items []string
	if err := value.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// attributes returns the bags of p in order.
func (p Parameters) attributes() []model.Attributes {
	out := make([]model.Attributes, len(p))
	for i, pa := range p {
		out[i] = model.Attributes{"name": pa.Name, "value": pa.Value}
	}
	return out
}

func (c *Column) attributes() model.Attributes {
	attrs := make(model.Attributes, len(c.Attrs)+1)
	for k, v := range c.Attrs {
		attrs[k] = v
	}
	if len(c.ValueSet) > 0 {
		attrs["valueSet"] = strings.Join(c.ValueSet, ",")
	}
	return attrs
}

func (i *Index) columns() []model.Attributes {
	out := make([]model.Attributes, len(i.Columns))
	for j, c := range i.Columns {
		out[j] = model.Attributes{"name": c.Name}
		if c.Size > 0 {
			out[j]["size"] = fmt.Sprint(c.Size)
		}
	}
	return out
}

func bags(ms []map[string]string) []model.Attributes {
	out := make([]model.Attributes, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
