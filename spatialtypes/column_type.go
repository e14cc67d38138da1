package spatialtypes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultGeometryKind = KindGeometry
	defaultSRID         = -1
	defaultDimension    = 2

	fromTextFunctionGeometry  = "ST_GeomFromText"
	fromTextFunctionGeography = "ST_GeogFromText"
)

// ColumnType is the capability shared by all spatial column descriptors.
// Implementations are immutable value types, safe for concurrent use.
type ColumnType interface {
	// TypeName returns the database-side type name: "geometry", "geography" or "raster".
	TypeName() string

	// ColumnDDL returns the column type string spliced verbatim into
	// CREATE TABLE / ALTER TABLE statements, e.g. "geometry(POINT,4326)".
	ColumnDDL() string

	// HasSpatialIndex reports whether a spatial (GIST) index should be
	// created for columns of this type.
	HasSpatialIndex() bool
}

// TextBindable is implemented by descriptors whose literals must be
// reconstructed server-side from their text form on write. The postgres
// engine wraps bind values of such columns in the returned function, so
// callers may supply WKT, EWKT or hex-encoded WKB interchangeably.
type TextBindable interface {
	FromTextFunction() string
}

// BinaryTransported is implemented by descriptors whose column reads must be
// wrapped in ST_AsBinary, so the driver always transports a canonical binary
// encoding regardless of the server's storage format.
type BinaryTransported interface {
	ResultDecoder() WKBDecodeFunc
}

// ManagedColumn is implemented by descriptors that can request the legacy
// AddGeometryColumn / DropGeometryColumn management procedures instead of
// plain DDL. Only Geometry implements this; the flag has no effect for
// Geography columns on any supported server.
type ManagedColumn interface {
	UsesManagementFunctions() bool
}

type gisState struct {
	kind                GeometryKindString
	srid                int
	dimension           int
	spatialIndex        bool
	managementFunctions bool
}

func defaultGISState() gisState {
	return gisState{
		kind:         defaultGeometryKind,
		srid:         defaultSRID,
		dimension:    defaultDimension,
		spatialIndex: true,
	}
}

// GISOption defines a functional option for configuring Geometry and Geography descriptors.
type GISOption func(*gisState) error

// WithKind sets the geometry kind for the descriptor, e.g. KindPoint.
// The kind is upper-cased and stored without validation.
func WithKind(kind GeometryKindString) GISOption {
	return func(state *gisState) error {
		state.kind = strings.ToUpper(kind)
		return nil
	}
}

// WithSRID sets the spatial reference system identifier for the descriptor.
func WithSRID(srid int) GISOption {
	return func(state *gisState) error {
		state.srid = srid
		return nil
	}
}

// WithSRIDText sets the SRID from its textual form, as reported by schema
// introspection. Returns ErrInvalidSRID joined with the parse cause if the
// input is not an integer.
func WithSRIDText(srid string) GISOption {
	return func(state *gisState) error {
		parsed, parseErr := strconv.Atoi(strings.TrimSpace(srid))
		if parseErr != nil {
			return errors.Join(ErrInvalidSRID, parseErr)
		}

		state.srid = parsed

		return nil
	}
}

// WithDimension sets the coordinate dimension for the descriptor.
func WithDimension(dimension int) GISOption {
	return func(state *gisState) error {
		state.dimension = dimension
		return nil
	}
}

// WithoutSpatialIndex marks the descriptor as not wanting a spatial index.
func WithoutSpatialIndex() GISOption {
	return func(state *gisState) error {
		state.spatialIndex = false
		return nil
	}
}

// WithManagementFunctions marks the descriptor for the legacy
// AddGeometryColumn / DropGeometryColumn procedures, needed for PostGIS 1.x
// servers. It has no effect for Geography descriptors.
func WithManagementFunctions() GISOption {
	return func(state *gisState) error {
		state.managementFunctions = true
		return nil
	}
}

// gisType carries the state and behavior shared by Geometry and Geography.
type gisType struct {
	typeName         string
	fromTextFunction string
	state            gisState
}

func buildGISType(typeName string, fromTextFunction string, options []GISOption) (gisType, error) {
	state := defaultGISState()

	for _, option := range options {
		if err := option(&state); err != nil {
			return gisType{}, err
		}
	}

	return gisType{
		typeName:         typeName,
		fromTextFunction: fromTextFunction,
		state:            state,
	}, nil
}

// TypeName returns the database-side type name.
func (t gisType) TypeName() string {
	return t.typeName
}

// GeometryKind returns the upper-cased geometry kind of the column.
func (t gisType) GeometryKind() GeometryKindString {
	return t.state.kind
}

// SRID returns the configured spatial reference system identifier,
// -1 when unspecified.
func (t gisType) SRID() int {
	return t.state.srid
}

// Dimension returns the configured coordinate dimension.
func (t gisType) Dimension() int {
	return t.state.dimension
}

// HasSpatialIndex reports whether a spatial index should be created.
func (t gisType) HasSpatialIndex() bool {
	return t.state.spatialIndex
}

// ColumnDDL returns the column type string for CREATE TABLE statements,
// e.g. "geometry(POINT,4326)".
func (t gisType) ColumnDDL() string {
	return fmt.Sprintf("%s(%s,%d)", t.typeName, t.state.kind, t.state.srid)
}

// FromTextFunction returns the server-side constructor function used to
// rebuild values of this type from their text form.
func (t gisType) FromTextFunction() string {
	return t.fromTextFunction
}

// ResultDecoder returns a decode closure bound to this column's SRID.
// The closure preserves SQL NULL: nil input yields a nil element.
func (t gisType) ResultDecoder() WKBDecodeFunc {
	srid := t.state.srid

	return func(raw []byte) *WKBElement {
		if raw == nil {
			return nil
		}

		return NewWKBElement(raw, srid)
	}
}

// Geometry is the column type descriptor for PostGIS geometry columns.
//
// Declaring a point column in WGS84 is done like this:
//
//	spatialtypes.NewGeometry(
//		spatialtypes.WithKind(spatialtypes.KindPoint),
//		spatialtypes.WithSRID(4326),
//	)
type Geometry struct {
	gisType
}

// NewGeometry builds a Geometry descriptor with optional configuration.
// Defaults: kind GEOMETRY, SRID -1, dimension 2, spatial index requested.
// A failing option aborts construction and the zero Geometry is returned.
func NewGeometry(options ...GISOption) (Geometry, error) {
	inner, err := buildGISType(TypeNameGeometry, fromTextFunctionGeometry, options)
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{gisType: inner}, nil
}

// UsesManagementFunctions reports whether the legacy column management
// procedures should be used instead of plain DDL for this column.
func (g Geometry) UsesManagementFunctions() bool {
	return g.state.managementFunctions
}

// Geography is the column type descriptor for PostGIS geography columns.
// It differs from Geometry only in its type name and its server-side
// from-text constructor; the management functions flag does not apply.
type Geography struct {
	gisType
}

// NewGeography builds a Geography descriptor with optional configuration.
// Defaults match NewGeometry. A failing option aborts construction and the
// zero Geography is returned.
func NewGeography(options ...GISOption) (Geography, error) {
	inner, err := buildGISType(TypeNameGeography, fromTextFunctionGeography, options)
	if err != nil {
		return Geography{}, err
	}

	return Geography{gisType: inner}, nil
}

// Raster is the column type descriptor for PostGIS raster columns.
// Raster values travel as raw bytes in both directions, so no bind or
// column expression wrapping is defined for them.
type Raster struct {
	spatialIndex bool
}

// RasterOption defines a functional option for configuring Raster descriptors.
type RasterOption func(*Raster)

// WithoutRasterSpatialIndex marks the descriptor as not wanting a spatial index.
func WithoutRasterSpatialIndex() RasterOption {
	return func(r *Raster) {
		r.spatialIndex = false
	}
}

// NewRaster builds a Raster descriptor. By default a spatial index is requested.
func NewRaster(options ...RasterOption) Raster {
	raster := Raster{spatialIndex: true}

	for _, option := range options {
		option(&raster)
	}

	return raster
}

// TypeName returns the database-side type name.
func (r Raster) TypeName() string {
	return TypeNameRaster
}

// ColumnDDL returns the column type string for CREATE TABLE statements.
func (r Raster) ColumnDDL() string {
	return TypeNameRaster
}

// HasSpatialIndex reports whether a spatial index should be created.
func (r Raster) HasSpatialIndex() bool {
	return r.spatialIndex
}

// ResultDecoder returns the decode closure for raster rows.
// The closure preserves SQL NULL: nil input yields a nil element.
func (r Raster) ResultDecoder() RasterDecodeFunc {
	return func(raw []byte) *RasterElement {
		if raw == nil {
			return nil
		}

		return NewRasterElement(raw)
	}
}
