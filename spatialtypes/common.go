package spatialtypes

import (
	"errors"
)

var ErrInvalidSRID = errors.New("srid is not a valid integer")
var ErrUnknownColumnType = errors.New("no constructor registered for reported column type name")
var ErrNilRegistry = errors.New("nil registry supplied")

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrEmptyColumnName = errors.New("empty column name supplied")
var ErrEmptySchemaName = errors.New("empty schema name supplied")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrInspectingColumnsFailed = errors.New("inspecting spatial columns failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrSelectingGeometriesFailed = errors.New("selecting geometries failed")
var ErrInsertingGeometryFailed = errors.New("inserting geometry failed")

// GeometryKindString is a type alias for string, representing the server-side geometry kind of a column.
type GeometryKindString = string

// The geometry kinds PostGIS ships with. Descriptors accept any string as a
// kind, upper-cased but unvalidated, so kinds added by newer servers keep
// working without a change here.
const (
	KindGeometry           GeometryKindString = "GEOMETRY"
	KindPoint              GeometryKindString = "POINT"
	KindLineString         GeometryKindString = "LINESTRING"
	KindPolygon            GeometryKindString = "POLYGON"
	KindMultiPoint         GeometryKindString = "MULTIPOINT"
	KindMultiLineString    GeometryKindString = "MULTILINESTRING"
	KindMultiPolygon       GeometryKindString = "MULTIPOLYGON"
	KindGeometryCollection GeometryKindString = "GEOMETRYCOLLECTION"
	KindCurve              GeometryKindString = "CURVE"
)

// The type names under which the target database reports spatial columns
// during schema introspection, and which name the column type in DDL.
const (
	TypeNameGeometry  = "geometry"
	TypeNameGeography = "geography"
	TypeNameRaster    = "raster"
)
