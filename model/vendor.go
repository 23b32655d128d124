package model

// VendorInfo carries vendor-specific parameters (for example a MySQL table
// engine) attached to a database, table, column, index or foreign key.
type VendorInfo struct {
	typ    string
	keys   []string
	params map[string]string
}

// NewVendorInfo returns an empty VendorInfo for the given vendor type.
func NewVendorInfo(typ string) *VendorInfo {
	return &VendorInfo{typ: typ, params: make(map[string]string)}
}

// Type returns the vendor type, e.g. "mysql".
func (v *VendorInfo) Type() string { return v.typ }

// SetParameter sets a parameter, keeping first-insertion order.
func (v *VendorInfo) SetParameter(name, value string) {
	if _, ok := v.params[name]; !ok {
		v.keys = append(v.keys, name)
	}
	v.params[name] = value
}

// Parameter returns the named parameter value.
func (v *VendorInfo) Parameter(name string) (string, bool) {
	p, ok := v.params[name]
	return p, ok
}

// ParameterNames returns the parameter names in insertion order.
func (v *VendorInfo) ParameterNames() []string {
	return append([]string(nil), v.keys...)
}

// IsEmpty reports whether no parameter was set.
func (v *VendorInfo) IsEmpty() bool { return len(v.keys) == 0 }

// Merge returns a new VendorInfo with the parameters of v overridden by
// those of other.
func (v *VendorInfo) Merge(other *VendorInfo) *VendorInfo {
	merged := NewVendorInfo(v.typ)
	for _, k := range v.keys {
		merged.SetParameter(k, v.params[k])
	}
	if other != nil {
		for _, k := range other.keys {
			merged.SetParameter(k, other.params[k])
		}
	}
	return merged
}

// LoadMapping reads the "type" attribute.
func (v *VendorInfo) LoadMapping(attrs Attributes) {
	v.typ = attrs.Get("type")
}

// VendorExtensible is implemented by entities that accept vendor infos.
type VendorExtensible interface {
	AddVendorInfo(vi *VendorInfo)
	VendorInfoForType(typ string) *VendorInfo
	VendorInfos() []*VendorInfo
}

// vendorPart implements VendorExtensible and is embedded by entities.
type vendorPart struct {
	vendorInfos []*VendorInfo
}

// AddVendorInfo adds vi, merging it into an existing info of the same type.
func (p *vendorPart) AddVendorInfo(vi *VendorInfo) {
	for i, existing := range p.vendorInfos {
		if existing.typ == vi.typ {
			p.vendorInfos[i] = existing.Merge(vi)
			return
		}
	}
	p.vendorInfos = append(p.vendorInfos, vi)
}

// AddVendorInfoFromAttributes creates a VendorInfo from a "type" attribute
// and one attribute bag ("name", "value") per parameter.
func (p *vendorPart) AddVendorInfoFromAttributes(attrs Attributes, params ...Attributes) *VendorInfo {
	vi := NewVendorInfo("")
	vi.LoadMapping(attrs)
	for _, pa := range params {
		vi.SetParameter(pa.Get("name"), pa.Get("value"))
	}
	p.AddVendorInfo(vi)
	return p.VendorInfoForType(vi.typ)
}

// VendorInfoForType returns the info for typ, or an empty one.
func (p *vendorPart) VendorInfoForType(typ string) *VendorInfo {
	for _, vi := range p.vendorInfos {
		if vi.typ == typ {
			return vi
		}
	}
	return NewVendorInfo(typ)
}

// VendorInfos returns all vendor infos.
func (p *vendorPart) VendorInfos() []*VendorInfo {
	return p.vendorInfos
}
