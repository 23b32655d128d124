package load

import (
	"fmt"
	"log/slog"

	"github.com/syssam/relgraph/dialect"
	"github.com/syssam/relgraph/model"

	// Built-in behaviors must be registered before documents name them.
	_ "github.com/syssam/relgraph/behavior"
)

// Option configures how a document is turned into a schema.
type Option func(*config)

type config struct {
	platform model.Platform
	finalize bool
	logger   *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{finalize: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPlatform sets the platform of databases that do not name one.
func WithPlatform(p model.Platform) Option {
	return func(c *config) {
		c.platform = p
	}
}

// WithoutFinalization leaves the schema as read: behaviors are not run and
// foreign key indices are not added.
func WithoutFinalization() Option {
	return func(c *config) {
		c.finalize = false
	}
}

// WithLogger sets the logger handed to platforms created for documents.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Build creates the schema described by the document.
func (d *Document) Build(opts ...Option) (*model.Schema, error) {
	cfg := newConfig(opts)
	s := model.NewSchema(d.Name)
	for _, dd := range d.Databases {
		if err := dd.build(s, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.finalize {
		if err := s.DoFinalInitialization(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *config) platformFor(name string) (model.Platform, error) {
	if name == "" {
		return c.platform, nil
	}
	p, err := dialect.New(name, dialect.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (dd *Database) build(s *model.Schema, cfg *config) error {
	attrs := model.Attributes(dd.Attrs)
	db, err := s.AddDatabaseFromAttributes(attrs)
	if err != nil {
		return err
	}
	p, err := cfg.platformFor(attrs.Get("platform"))
	if err != nil {
		return fmt.Errorf("database %q: %w", db.Name(), err)
	}
	if p != nil {
		db.SetPlatform(p)
	}
	for _, dom := range dd.Domains {
		if _, err := db.AddDomainFromAttributes(dom); err != nil {
			return fmt.Errorf("database %q: %w", db.Name(), err)
		}
	}
	for _, td := range dd.Tables {
		if err := td.build(db); err != nil {
			return fmt.Errorf("database %q: %w", db.Name(), err)
		}
	}
	for _, bd := range dd.Behaviors {
		if _, err := db.AddBehaviorFromAttributes(bd.Attrs, bd.Parameters.attributes()...); err != nil {
			return fmt.Errorf("database %q: %w", db.Name(), err)
		}
	}
	addVendor(db, dd.Vendor)
	return nil
}

func (td *Table) build(db *model.Database) error {
	t, err := db.AddTableFromAttributes(td.Attrs)
	if err != nil {
		return err
	}
	for _, cd := range td.Columns {
		c, err := t.AddColumnFromAttributes(cd.attributes(), bags(cd.Inheritances)...)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name(), err)
		}
		addVendor(c, cd.Vendor)
	}
	for _, fd := range td.ForeignKeys {
		fk, err := t.AddForeignKeyFromAttributes(fd.Attrs, bags(fd.References)...)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name(), err)
		}
		addVendor(fk, fd.Vendor)
	}
	for _, id := range td.Indices {
		idx, err := t.AddIndexFromAttributes(id.Attrs, id.columns()...)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name(), err)
		}
		addVendor(idx, id.Vendor)
	}
	for _, ud := range td.Uniques {
		idx, err := t.AddUniqueFromAttributes(ud.Attrs, ud.columns()...)
		if err != nil {
			return fmt.Errorf("table %q: %w", t.Name(), err)
		}
		addVendor(idx, ud.Vendor)
	}
	for _, bd := range td.Behaviors {
		if _, err := t.AddBehaviorFromAttributes(bd.Attrs, bd.Parameters.attributes()...); err != nil {
			return fmt.Errorf("table %q: %w", t.Name(), err)
		}
	}
	addVendor(t, td.Vendor)
	return nil
}

type vendorTarget interface {
	AddVendorInfoFromAttributes(attrs model.Attributes, params ...model.Attributes) *model.VendorInfo
}

func addVendor(target vendorTarget, vendors []*Vendor) {
	for _, v := range vendors {
		target.AddVendorInfoFromAttributes(model.Attributes{"type": v.Type}, v.Parameters.attributes()...)
	}
}
