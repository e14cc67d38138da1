// Command places-demo shows the spatial column types against a live
// PostGIS database: it declares a table with a geometry column, inserts a
// few places, and reads the geometries back as WKB elements.
//
// It expects a PostGIS-enabled database reachable through POSTGRES_TEST_DSN
// (or the default test DSN), optionally loaded from a .env file.
package main

import (
	"context"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/gijs/postgis-types-go/spatialtypes"
	"github.com/gijs/postgis-types-go/spatialtypes/logadapters"
	"github.com/gijs/postgis-types-go/spatialtypes/postgresengine"
	"github.com/gijs/postgis-types-go/testutil/postgresengine/config"
)

const (
	tableName      = "places"
	geometryColumn = "position"
)

type place struct {
	Name       string            `json:"name"`
	Position   string            `json:"position"` // WKT
	Properties map[string]string `json:"properties"`
}

func main() {
	// A missing .env file is fine, the DSN falls back to the default.
	_ = godotenv.Load()

	ctx := context.Background()

	zl := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	logger := logadapters.NewZerologLogger(zl)

	pool, poolErr := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
	if poolErr != nil {
		log.Fatal("failed to create connection pool: ", poolErr)
	}
	defer pool.Close()

	manager, managerErr := postgresengine.NewSchemaManagerFromPGXPool(
		pool,
		postgresengine.WithLogger(logger),
	)
	if managerErr != nil {
		log.Fatal("failed to create schema manager: ", managerErr)
	}

	position, typeErr := spatialtypes.NewGeometry(
		spatialtypes.WithKind(spatialtypes.KindPoint),
		spatialtypes.WithSRID(4326),
	)
	if typeErr != nil {
		log.Fatal("failed to build geometry type: ", typeErr)
	}

	setupTable(ctx, pool)

	if err := manager.AddColumn(ctx, tableName, geometryColumn, position); err != nil {
		log.Fatal("failed to add geometry column: ", err)
	}

	insertPlaces(ctx, pool, position)

	columns, inspectErr := manager.InspectColumns(ctx, tableName)
	if inspectErr != nil {
		log.Fatal("failed to inspect columns: ", inspectErr)
	}

	for _, column := range columns {
		zl.Info().
			Str("column", column.ColumnName).
			Str("ddl", column.ColumnType.ColumnDDL()).
			Msg("reflected spatial column")
	}

	elements, selectErr := manager.SelectGeometries(ctx, tableName, geometryColumn, position)
	if selectErr != nil {
		log.Fatal("failed to select geometries: ", selectErr)
	}

	for _, element := range elements {
		if element == nil {
			zl.Info().Msg("place without position (SQL NULL)")
			continue
		}

		zl.Info().
			Int("srid", element.SRID()).
			Str("wkb_hex", element.String()).
			Msg("place position")
	}
}

func setupTable(ctx context.Context, pool *pgxpool.Pool) {
	dropStmt := `DROP TABLE IF EXISTS places`
	createStmt := `CREATE TABLE places (id uuid PRIMARY KEY, name text NOT NULL, properties jsonb)`

	if _, err := pool.Exec(ctx, dropStmt); err != nil {
		log.Fatal("failed to drop table: ", err)
	}

	if _, err := pool.Exec(ctx, createStmt); err != nil {
		log.Fatal("failed to create table: ", err)
	}
}

func insertPlaces(ctx context.Context, pool *pgxpool.Pool, position spatialtypes.Geometry) {
	places := []place{
		{
			Name:       "Zurich main station",
			Position:   "POINT(8.5402 47.3782)",
			Properties: map[string]string{"kind": "station"},
		},
		{
			Name:       "Uetliberg summit",
			Position:   "POINT(8.4910 47.3493)",
			Properties: map[string]string{"kind": "peak"},
		},
	}

	for _, p := range places {
		propertiesJSON, marshalErr := jsoniter.Marshal(p.Properties)
		if marshalErr != nil {
			log.Fatal("failed to marshal properties: ", marshalErr)
		}

		insertStmt := goqu.Dialect("postgres").
			Insert(tableName).
			Cols("id", "name", "properties", geometryColumn).
			Vals(goqu.Vals{
				uuid.New().String(),
				p.Name,
				string(propertiesJSON),
				postgresengine.BindExpression(position, p.Position),
			})

		sqlQuery, _, toSQLErr := insertStmt.ToSQL()
		if toSQLErr != nil {
			log.Fatal("failed to build insert: ", toSQLErr)
		}

		if _, execErr := pool.Exec(ctx, sqlQuery); execErr != nil {
			log.Fatal("failed to insert place: ", execErr)
		}
	}
}
