package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/gijs/postgis-types-go/spatialtypes"
	"github.com/gijs/postgis-types-go/spatialtypes/postgresengine/internal/adapters"
)

const (
	defaultSchemaName = "public"
	dialectPostgres   = "postgres"

	viewGeometryColumns  = "geometry_columns"
	viewGeographyColumns = "geography_columns"
	viewRasterColumns    = "raster_columns"
	colGeometryColumn    = "f_geometry_column"
	colGeographyColumn   = "f_geography_column"
	colRasterColumn      = "r_raster_column"
	colTableSchema       = "f_table_schema"
	colRasterTableSchema = "r_table_schema"
	colTableName         = "f_table_name"
	colRasterTableName   = "r_table_name"
	colGeometryKind      = "type"
	colCoordDimension    = "coord_dimension"
	castSRIDText         = "srid::text"

	logMsgBuildQueryFailed      = "failed to build query"
	logMsgDBQueryFailed         = "database query execution failed"
	logMsgDBExecFailed          = "database execution failed"
	logMsgCloseRowsFailed       = "failed to close database rows"
	logMsgScanRowFailed         = "failed to scan database row"
	logMsgBuildColumnTypeFailed = "failed to build column type from catalog row"
	logMsgColumnsInspected      = "spatial columns inspected"
	logMsgColumnAdded           = "spatial column added"
	logMsgColumnDropped         = "spatial column dropped"
	logMsgIndexCreated          = "spatial index created"
	logMsgGeometryInserted      = "geometry inserted"
	logMsgGeometriesSelected    = "geometries selected"
	logMsgRastersSelected       = "rasters selected"
	logMsgSQLExecuted           = "executed sql for: "
	logMsgOperation             = "schema operation: "
	logAttrError                = "error"
	logAttrQuery                = "query"
	logAttrTable                = "table"
	logAttrColumn               = "column"
	logAttrColumnCount          = "column_count"
	logAttrRowCount             = "row_count"
	logAttrDurationMS           = "duration_ms"
	logActionInspect            = "inspect"
	logActionAddColumn          = "add_column"
	logActionDropColumn         = "drop_column"
	logActionCreateIndex        = "create_index"
	logActionInsert             = "insert"
	logActionSelect             = "select"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// GISColumnType is the full capability surface of geometry and geography
// descriptors: DDL emission, bind wrapping, and binary-transported reads.
type GISColumnType interface {
	spatialtypes.ColumnType
	spatialtypes.TextBindable
	spatialtypes.BinaryTransported
}

// SpatialColumn is one spatial column discovered by schema introspection,
// with its reported name and a fully-configured column type descriptor.
type SpatialColumn struct {
	ColumnName string
	ColumnType spatialtypes.ColumnType
}

// SchemaManager applies and reflects spatial column definitions against a
// PostGIS-enabled Postgres database. It leverages a database adapter and
// supports customizable logging, schema, and type registry configuration.
type SchemaManager struct {
	db         adapters.DBAdapter
	schemaName string
	registry   *spatialtypes.Registry
	logger     Logger
}

// NewSchemaManagerFromPGXPool creates a new SchemaManager using a pgx Pool with optional configuration.
func NewSchemaManagerFromPGXPool(db *pgxpool.Pool, options ...Option) (SchemaManager, error) {
	if db == nil {
		return SchemaManager{}, spatialtypes.ErrNilDatabaseConnection
	}

	return newSchemaManager(adapters.NewPGXAdapter(db), options...)
}

// NewSchemaManagerFromSQLDB creates a new SchemaManager using a sql.DB with optional configuration.
func NewSchemaManagerFromSQLDB(db *sql.DB, options ...Option) (SchemaManager, error) {
	if db == nil {
		return SchemaManager{}, spatialtypes.ErrNilDatabaseConnection
	}

	return newSchemaManager(adapters.NewSQLAdapter(db), options...)
}

// NewSchemaManagerFromSQLX creates a new SchemaManager using a sqlx.DB with optional configuration.
func NewSchemaManagerFromSQLX(db *sqlx.DB, options ...Option) (SchemaManager, error) {
	if db == nil {
		return SchemaManager{}, spatialtypes.ErrNilDatabaseConnection
	}

	return newSchemaManager(adapters.NewSQLXAdapter(db), options...)
}

func newSchemaManager(db adapters.DBAdapter, options ...Option) (SchemaManager, error) {
	registry := spatialtypes.NewRegistry()
	if err := spatialtypes.RegisterSpatialTypes(registry); err != nil {
		return SchemaManager{}, err
	}

	sm := SchemaManager{
		db:         db,
		schemaName: defaultSchemaName,
		registry:   registry,
	}

	for _, option := range options {
		if err := option(&sm); err != nil {
			return SchemaManager{}, err
		}
	}

	return sm, nil
}

// InspectColumns reflects the spatial columns of the given table from the
// geometry_columns, geography_columns and raster_columns catalog views,
// resolving each reported type name through the configured registry.
func (sm SchemaManager) InspectColumns(ctx context.Context, tableName string) ([]SpatialColumn, error) {
	if tableName == "" {
		return nil, spatialtypes.ErrEmptyTableName
	}

	columns := make([]SpatialColumn, 0)

	gisCatalogs := []struct {
		typeName  string
		view      string
		columnCol string
		schemaCol string
		tableCol  string
	}{
		{spatialtypes.TypeNameGeometry, viewGeometryColumns, colGeometryColumn, colTableSchema, colTableName},
		{spatialtypes.TypeNameGeography, viewGeographyColumns, colGeographyColumn, colTableSchema, colTableName},
	}

	for _, catalog := range gisCatalogs {
		gisColumns, inspectErr := sm.inspectGISCatalog(ctx, tableName, catalog.typeName, catalog.view, catalog.columnCol, catalog.schemaCol, catalog.tableCol)
		if inspectErr != nil {
			return nil, inspectErr
		}

		columns = append(columns, gisColumns...)
	}

	rasterColumns, inspectErr := sm.inspectRasterCatalog(ctx, tableName)
	if inspectErr != nil {
		return nil, inspectErr
	}

	columns = append(columns, rasterColumns...)

	sm.logOperation(logMsgColumnsInspected, logAttrTable, tableName, logAttrColumnCount, len(columns))

	return columns, nil
}

func (sm SchemaManager) inspectGISCatalog(
	ctx context.Context,
	tableName string,
	typeName string,
	view string,
	columnCol string,
	schemaCol string,
	tableCol string,
) ([]SpatialColumn, error) {

	selectStmt := goqu.Dialect(dialectPostgres).
		From(view).
		Select(goqu.C(columnCol), goqu.C(colGeometryKind), goqu.L(castSRIDText), goqu.C(colCoordDimension)).
		Where(goqu.Ex{schemaCol: sm.schemaName, tableCol: tableName}).
		Order(goqu.I(columnCol).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		sm.logError(logMsgBuildQueryFailed, toSQLErr, logAttrTable, tableName)
		return nil, errors.Join(spatialtypes.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := sm.executeQuery(ctx, sqlQuery, logActionInspect)
	if queryErr != nil {
		return nil, errors.Join(spatialtypes.ErrInspectingColumnsFailed, queryErr)
	}
	defer sm.closeRows(rows)

	columns := make([]SpatialColumn, 0)

	for rows.Next() {
		var columnName, kind, sridText string
		var dimension int

		if scanErr := rows.Scan(&columnName, &kind, &sridText, &dimension); scanErr != nil {
			sm.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(spatialtypes.ErrScanningDBRowFailed, scanErr)
		}

		columnType, buildErr := sm.registry.Build(typeName, spatialtypes.ColumnConfig{
			Kind:      kind,
			SRIDText:  sridText,
			Dimension: dimension,
		})
		if buildErr != nil {
			sm.logError(logMsgBuildColumnTypeFailed, buildErr, logAttrColumn, columnName)
			return nil, errors.Join(spatialtypes.ErrInspectingColumnsFailed, buildErr)
		}

		columns = append(columns, SpatialColumn{ColumnName: columnName, ColumnType: columnType})
	}

	return columns, nil
}

func (sm SchemaManager) inspectRasterCatalog(ctx context.Context, tableName string) ([]SpatialColumn, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(viewRasterColumns).
		Select(goqu.C(colRasterColumn)).
		Where(goqu.Ex{colRasterTableSchema: sm.schemaName, colRasterTableName: tableName}).
		Order(goqu.I(colRasterColumn).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		sm.logError(logMsgBuildQueryFailed, toSQLErr, logAttrTable, tableName)
		return nil, errors.Join(spatialtypes.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := sm.executeQuery(ctx, sqlQuery, logActionInspect)
	if queryErr != nil {
		return nil, errors.Join(spatialtypes.ErrInspectingColumnsFailed, queryErr)
	}
	defer sm.closeRows(rows)

	columns := make([]SpatialColumn, 0)

	for rows.Next() {
		var columnName string

		if scanErr := rows.Scan(&columnName); scanErr != nil {
			sm.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(spatialtypes.ErrScanningDBRowFailed, scanErr)
		}

		columnType, buildErr := sm.registry.Build(spatialtypes.TypeNameRaster, spatialtypes.ColumnConfig{})
		if buildErr != nil {
			sm.logError(logMsgBuildColumnTypeFailed, buildErr, logAttrColumn, columnName)
			return nil, errors.Join(spatialtypes.ErrInspectingColumnsFailed, buildErr)
		}

		columns = append(columns, SpatialColumn{ColumnName: columnName, ColumnType: columnType})
	}

	return columns, nil
}

// AddColumn adds a spatial column to an existing table, emitting either
// plain DDL or the legacy management procedure depending on the descriptor.
// A spatial index is created afterwards if the descriptor requests one.
func (sm SchemaManager) AddColumn(ctx context.Context, tableName, columnName string, columnType spatialtypes.ColumnType) error {
	sqlQuery, buildErr := AddColumnSQL(sm.schemaName, tableName, columnName, columnType)
	if buildErr != nil {
		return buildErr
	}

	if execErr := sm.executeStatement(ctx, sqlQuery, logActionAddColumn); execErr != nil {
		return execErr
	}

	sm.logOperation(logMsgColumnAdded, logAttrTable, tableName, logAttrColumn, columnName)

	if columnType.HasSpatialIndex() {
		return sm.CreateSpatialIndex(ctx, tableName, columnName)
	}

	return nil
}

// DropColumn drops a spatial column, emitting either plain DDL or the legacy
// management procedure depending on the descriptor.
func (sm SchemaManager) DropColumn(ctx context.Context, tableName, columnName string, columnType spatialtypes.ColumnType) error {
	sqlQuery, buildErr := DropColumnSQL(sm.schemaName, tableName, columnName, columnType)
	if buildErr != nil {
		return buildErr
	}

	if execErr := sm.executeStatement(ctx, sqlQuery, logActionDropColumn); execErr != nil {
		return execErr
	}

	sm.logOperation(logMsgColumnDropped, logAttrTable, tableName, logAttrColumn, columnName)

	return nil
}

// CreateSpatialIndex creates a GIST index over the given spatial column.
func (sm SchemaManager) CreateSpatialIndex(ctx context.Context, tableName, columnName string) error {
	sqlQuery, buildErr := CreateIndexSQL(sm.schemaName, tableName, columnName)
	if buildErr != nil {
		return buildErr
	}

	if execErr := sm.executeStatement(ctx, sqlQuery, logActionCreateIndex); execErr != nil {
		return execErr
	}

	sm.logOperation(logMsgIndexCreated, logAttrTable, tableName, logAttrColumn, columnName)

	return nil
}

// InsertGeometry inserts a single spatial literal into the given column,
// wrapping it in the descriptor's from-text constructor so the caller may
// supply WKT, EWKT, hex-encoded WKB, or a *spatialtypes.WKBElement.
func (sm SchemaManager) InsertGeometry(
	ctx context.Context,
	tableName string,
	columnName string,
	columnType GISColumnType,
	value any,
) error {

	if tableName == "" {
		return spatialtypes.ErrEmptyTableName
	}

	if columnName == "" {
		return spatialtypes.ErrEmptyColumnName
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(goqu.S(sm.schemaName).Table(tableName)).
		Cols(columnName).
		Vals(goqu.Vals{BindExpression(columnType, value)})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		sm.logError(logMsgBuildQueryFailed, toSQLErr, logAttrTable, tableName)
		return errors.Join(spatialtypes.ErrBuildingQueryFailed, toSQLErr)
	}

	if execErr := sm.executeStatement(ctx, sqlQuery, logActionInsert); execErr != nil {
		return errors.Join(spatialtypes.ErrInsertingGeometryFailed, execErr)
	}

	sm.logOperation(logMsgGeometryInserted, logAttrTable, tableName, logAttrColumn, columnName)

	return nil
}

// SelectGeometries reads all values of the given spatial column, wrapping
// the column reference in ST_AsBinary and decoding each row with the
// descriptor's bound result decoder. SQL NULL rows decode to nil elements.
func (sm SchemaManager) SelectGeometries(
	ctx context.Context,
	tableName string,
	columnName string,
	columnType GISColumnType,
) ([]*spatialtypes.WKBElement, error) {

	rawRows, queryErr := sm.selectRawColumn(ctx, tableName, ColumnExpression(columnType, goqu.C(columnName)))
	if queryErr != nil {
		return nil, errors.Join(spatialtypes.ErrSelectingGeometriesFailed, queryErr)
	}

	decode := columnType.ResultDecoder()
	elements := make([]*spatialtypes.WKBElement, 0, len(rawRows))

	for _, raw := range rawRows {
		elements = append(elements, decode(raw))
	}

	sm.logOperation(logMsgGeometriesSelected, logAttrTable, tableName, logAttrRowCount, len(elements))

	return elements, nil
}

// SelectRasters reads all values of the given raster column. Raster bytes
// pass through unmodified; SQL NULL rows decode to nil elements.
func (sm SchemaManager) SelectRasters(
	ctx context.Context,
	tableName string,
	columnName string,
	columnType spatialtypes.Raster,
) ([]*spatialtypes.RasterElement, error) {

	rawRows, queryErr := sm.selectRawColumn(ctx, tableName, goqu.C(columnName))
	if queryErr != nil {
		return nil, errors.Join(spatialtypes.ErrSelectingGeometriesFailed, queryErr)
	}

	decode := columnType.ResultDecoder()
	elements := make([]*spatialtypes.RasterElement, 0, len(rawRows))

	for _, raw := range rawRows {
		elements = append(elements, decode(raw))
	}

	sm.logOperation(logMsgRastersSelected, logAttrTable, tableName, logAttrRowCount, len(elements))

	return elements, nil
}

func (sm SchemaManager) selectRawColumn(ctx context.Context, tableName string, column any) ([][]byte, error) {
	if tableName == "" {
		return nil, spatialtypes.ErrEmptyTableName
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.S(sm.schemaName).Table(tableName)).
		Select(column)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		sm.logError(logMsgBuildQueryFailed, toSQLErr, logAttrTable, tableName)
		return nil, errors.Join(spatialtypes.ErrBuildingQueryFailed, toSQLErr)
	}

	rows, _, queryErr := sm.executeQuery(ctx, sqlQuery, logActionSelect)
	if queryErr != nil {
		return nil, queryErr
	}
	defer sm.closeRows(rows)

	rawRows := make([][]byte, 0)

	for rows.Next() {
		var raw []byte

		if scanErr := rows.Scan(&raw); scanErr != nil {
			sm.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(spatialtypes.ErrScanningDBRowFailed, scanErr)
		}

		rawRows = append(rawRows, raw)
	}

	return rawRows, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (sm SchemaManager) executeQuery(ctx context.Context, sqlQuery sqlQueryString, action string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := sm.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	sm.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		sm.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, queryErr
	}

	return rows, duration, nil
}

// executeStatement executes a statement without result rows, with timing information.
func (sm SchemaManager) executeStatement(ctx context.Context, sqlQuery sqlQueryString, action string) error {
	start := time.Now()
	_, execErr := sm.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	sm.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		sm.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return execErr
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (sm SchemaManager) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if sm.logger != nil {
			sm.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}
