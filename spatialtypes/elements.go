package spatialtypes

import (
	"encoding/hex"
)

// WKBDecodeFunc is a type alias for the decode closure bound to a geometry
// or geography column, invoked once per fetched row.
type WKBDecodeFunc = func(raw []byte) *WKBElement

// RasterDecodeFunc is a type alias for the decode closure bound to a raster
// column, invoked once per fetched row.
type RasterDecodeFunc = func(raw []byte) *RasterElement

// WKBElement wraps the raw WKB bytes read from a geometry or geography
// column, together with the SRID configured on the owning column type.
// It holds the driver bytes as received; it does not parse them.
type WKBElement struct {
	data []byte
	srid int
}

// NewWKBElement builds a WKBElement from raw driver bytes and an SRID.
func NewWKBElement(data []byte, srid int) *WKBElement {
	return &WKBElement{data: data, srid: srid}
}

// Data returns the wrapped WKB bytes, unchanged from what the driver delivered.
func (e *WKBElement) Data() []byte {
	return e.data
}

// SRID returns the spatial reference system identifier of the owning column.
func (e *WKBElement) SRID() int {
	return e.srid
}

// String renders the element as hex-encoded WKB, suitable for logging.
func (e *WKBElement) String() string {
	return hex.EncodeToString(e.data)
}

// RasterElement wraps the raw bytes read from a raster column.
type RasterElement struct {
	data []byte
}

// NewRasterElement builds a RasterElement from raw driver bytes.
func NewRasterElement(data []byte) *RasterElement {
	return &RasterElement{data: data}
}

// Data returns the wrapped raster bytes, unchanged from what the driver delivered.
func (e *RasterElement) Data() []byte {
	return e.data
}
