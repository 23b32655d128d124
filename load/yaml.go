package load

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/syssam/relgraph/model"
)

// ReadYAML reads a schema document from r and builds it.
//
// Unknown scalar attributes are ignored, as the model ignores them. Unknown
// nested sections are rejected.
func ReadYAML(r io.Reader, opts ...Option) (*model.Schema, error) {
	d, err := DecodeYAML(r)
	if err != nil {
		return nil, err
	}
	s, err := d.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return s, nil
}

// DecodeYAML decodes a schema document from r without building it.
func DecodeYAML(r io.Reader) (*Document, error) {
	d := &Document{}
	if err := yaml.NewDecoder(r).Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		return nil, fmt.Errorf("load: decode yaml: %w", err)
	}
	return d, nil
}

// WriteYAML writes s to w as a schema document.
func WriteYAML(w io.Writer, s *model.Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("load: encode yaml: %w", err)
	}
	return enc.Close()
}
