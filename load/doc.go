// Package load reads and writes schema graphs.
//
// A Document is the serialized form of a model.Schema. Every element keeps
// its scalar attributes in a flat map using the same keys the model's
// LoadMapping methods read, so a document maps one to one onto the
// attribute-bag factories of the model:
//
//	name: bookstore
//	databases:
//	  - name: bookstore
//	    platform: mysql
//	    tables:
//	      - name: book
//	        columns:
//	          - {name: id, type: INTEGER, primaryKey: true, autoIncrement: true}
//	          - {name: title, type: VARCHAR, size: 255, required: true}
//	        uniques:
//	          - columns: [title]
//
// ReadYAML and WriteYAML handle YAML documents. MarshalSnapshot and
// UnmarshalSnapshot store a single database as a msgpack blob, suitable
// for keeping the last migrated state next to the migrations.
package load
