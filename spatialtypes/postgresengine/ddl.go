package postgresengine

import (
	"fmt"
	"strings"

	"github.com/gijs/postgis-types-go/spatialtypes"
)

const (
	addGeometryColumnProcedure  = "AddGeometryColumn"
	dropGeometryColumnProcedure = "DropGeometryColumn"
	spatialIndexMethod          = "GIST"
)

// gisDescriptor is the attribute surface the management procedures need.
// Geometry and Geography both satisfy it.
type gisDescriptor interface {
	GeometryKind() spatialtypes.GeometryKindString
	SRID() int
	Dimension() int
}

// AddColumnSQL builds the statement that adds a spatial column to an
// existing table. For geometry descriptors carrying the management functions
// flag it emits the legacy AddGeometryColumn procedure call needed by
// PostGIS 1.x servers; otherwise plain ALTER TABLE DDL with the descriptor's
// column type string spliced in.
func AddColumnSQL(schemaName, tableName, columnName string, columnType spatialtypes.ColumnType) (string, error) {
	if err := validateDDLNames(schemaName, tableName, columnName); err != nil {
		return "", err
	}

	if managed, isManaged := columnType.(spatialtypes.ManagedColumn); isManaged && managed.UsesManagementFunctions() {
		descriptor, hasGISAttributes := columnType.(gisDescriptor)
		if hasGISAttributes {
			return fmt.Sprintf("SELECT %s(%s, %s, %s, %d, %s, %d)",
				addGeometryColumnProcedure,
				quoteLiteral(schemaName),
				quoteLiteral(tableName),
				quoteLiteral(columnName),
				descriptor.SRID(),
				quoteLiteral(descriptor.GeometryKind()),
				descriptor.Dimension(),
			), nil
		}
	}

	return fmt.Sprintf("ALTER TABLE %s.%s ADD COLUMN %s %s",
		quoteIdent(schemaName),
		quoteIdent(tableName),
		quoteIdent(columnName),
		columnType.ColumnDDL(),
	), nil
}

// DropColumnSQL builds the statement that drops a spatial column, using the
// legacy DropGeometryColumn procedure under the same conditions as
// AddColumnSQL.
func DropColumnSQL(schemaName, tableName, columnName string, columnType spatialtypes.ColumnType) (string, error) {
	if err := validateDDLNames(schemaName, tableName, columnName); err != nil {
		return "", err
	}

	if managed, isManaged := columnType.(spatialtypes.ManagedColumn); isManaged && managed.UsesManagementFunctions() {
		return fmt.Sprintf("SELECT %s(%s, %s, %s)",
			dropGeometryColumnProcedure,
			quoteLiteral(schemaName),
			quoteLiteral(tableName),
			quoteLiteral(columnName),
		), nil
	}

	return fmt.Sprintf("ALTER TABLE %s.%s DROP COLUMN %s",
		quoteIdent(schemaName),
		quoteIdent(tableName),
		quoteIdent(columnName),
	), nil
}

// CreateIndexSQL builds the statement that creates a GIST index over a
// spatial column.
func CreateIndexSQL(schemaName, tableName, columnName string) (string, error) {
	if err := validateDDLNames(schemaName, tableName, columnName); err != nil {
		return "", err
	}

	indexName := fmt.Sprintf("idx_%s_%s", tableName, columnName)

	return fmt.Sprintf("CREATE INDEX %s ON %s.%s USING %s (%s)",
		quoteIdent(indexName),
		quoteIdent(schemaName),
		quoteIdent(tableName),
		spatialIndexMethod,
		quoteIdent(columnName),
	), nil
}

func validateDDLNames(schemaName, tableName, columnName string) error {
	if schemaName == "" {
		return spatialtypes.ErrEmptySchemaName
	}

	if tableName == "" {
		return spatialtypes.ErrEmptyTableName
	}

	if columnName == "" {
		return spatialtypes.ErrEmptyColumnName
	}

	return nil
}

// quoteIdent double-quotes an SQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral single-quotes an SQL string literal, escaping embedded quotes.
func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}
