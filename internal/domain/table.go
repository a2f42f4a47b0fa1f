package domain

// Table kind constants.
const (
	TableKindManaged  = "MANAGED"
	TableKindExternal = "EXTERNAL"
)

// TableIdentifier names a table, optionally qualified by its owning database.
type TableIdentifier struct {
	Database string
	Name     string
}

// Qualified returns true when the identifier carries a database component.
func (id TableIdentifier) Qualified() bool { return id.Database != "" }

// SchemaField is a named, typed, nullable column. Field order within a
// schema reflects remote column order and is significant.
type SchemaField struct {
	Name     string
	Type     FieldType
	Nullable bool
}

// StorageDescriptor describes the physical layout of a table. All fields may
// be empty for tables whose storage cannot be discovered remotely.
type StorageDescriptor struct {
	Location     string
	InputFormat  string
	OutputFormat string
	SerDe        string
	Compressed   bool
	Properties   map[string]string
}

// CatalogTable is a catalog entry. Instances are constructed fresh per
// lookup and are immutable once returned.
type CatalogTable struct {
	Identifier TableIdentifier
	Kind       string
	Schema     []SchemaField
	Storage    StorageDescriptor
}
