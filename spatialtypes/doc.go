// Package spatialtypes provides column type descriptors for PostGIS columns
// (geometry, geography, raster) together with the element wrappers and the
// type registry used during schema reflection.
//
// This package holds only pure value types: descriptors are immutable after
// construction, perform no I/O, and are safe to share between goroutines.
// Everything that touches a database or builds SQL lives in the
// postgresengine subpackage.
//
// Key types:
//   - Geometry, Geography, Raster: column type descriptors
//   - WKBElement, RasterElement: value wrappers returned on row reads
//   - Registry: reverse mapping from reported type names to constructors
//
// Common usage pattern:
//
//	position, err := spatialtypes.NewGeometry(
//		spatialtypes.WithKind(spatialtypes.KindPoint),
//		spatialtypes.WithSRID(4326),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	position.ColumnDDL() // "geometry(POINT,4326)"
//
//	decode := position.ResultDecoder()
//	element := decode(rawBytesFromDriver) // nil for SQL NULL
package spatialtypes
