// Package postgresengine adapts the spatialtypes descriptors to a
// PostGIS-enabled Postgres database.
//
// It provides the two expression hooks (bind wrapping through
// ST_GeomFromText / ST_GeogFromText, read wrapping through ST_AsBinary)
// built on goqu, DDL emission for spatial columns including the legacy
// PostGIS 1.x management procedures, GIST index creation, and schema
// introspection through the spatial catalog views, supporting multiple
// database adapters (pgx, sql.DB, sqlx).
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	manager, _ := postgresengine.NewSchemaManagerFromPGXPool(db)
//
//	// With schema and logging configuration
//	manager, _ := postgresengine.NewSchemaManagerFromPGXPool(
//		db,
//		postgresengine.WithSchemaName("gisdata"),
//		postgresengine.WithLogger(logger),
//	)
//
//	position, _ := spatialtypes.NewGeometry(
//		spatialtypes.WithKind(spatialtypes.KindPoint),
//		spatialtypes.WithSRID(4326),
//	)
//
//	_ = manager.AddColumn(ctx, "places", "position", position)
//	_ = manager.InsertGeometry(ctx, "places", "position", position, "POINT(8.5 47.4)")
//	elements, _ := manager.SelectGeometries(ctx, "places", "position", position)
package postgresengine
