package postgresengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gijs/postgis-types-go/spatialtypes"
	"github.com/gijs/postgis-types-go/spatialtypes/postgresengine"
)

func Test_AddColumnSQL_PlainDDL(t *testing.T) {
	tests := []struct {
		name        string
		columnType  spatialtypes.ColumnType
		expectedSQL string
	}{
		{
			name: "geometry_point_wgs84",
			columnType: mustGeometry(t,
				spatialtypes.WithKind(spatialtypes.KindPoint),
				spatialtypes.WithSRID(4326),
			),
			expectedSQL: `ALTER TABLE "public"."places" ADD COLUMN "position" geometry(POINT,4326)`,
		},
		{
			name:        "geography_defaults",
			columnType:  mustGeography(t),
			expectedSQL: `ALTER TABLE "public"."places" ADD COLUMN "position" geography(GEOMETRY,-1)`,
		},
		{
			name:        "raster",
			columnType:  spatialtypes.NewRaster(),
			expectedSQL: `ALTER TABLE "public"."places" ADD COLUMN "position" raster`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sqlQuery, err := postgresengine.AddColumnSQL("public", "places", "position", tc.columnType)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedSQL, sqlQuery)
		})
	}
}

func Test_AddColumnSQL_ManagementFunctions(t *testing.T) {
	geometry := mustGeometry(t,
		spatialtypes.WithKind(spatialtypes.KindPoint),
		spatialtypes.WithSRID(4326),
		spatialtypes.WithManagementFunctions(),
	)

	sqlQuery, err := postgresengine.AddColumnSQL("public", "places", "position", geometry)

	require.NoError(t, err)
	assert.Equal(t, `SELECT AddGeometryColumn('public', 'places', 'position', 4326, 'POINT', 2)`, sqlQuery)
}

func Test_AddColumnSQL_ManagementFlagHasNoEffectForGeography(t *testing.T) {
	geography := mustGeography(t,
		spatialtypes.WithKind(spatialtypes.KindPoint),
		spatialtypes.WithSRID(4326),
		spatialtypes.WithManagementFunctions(),
	)

	sqlQuery, err := postgresengine.AddColumnSQL("public", "places", "position", geography)

	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "public"."places" ADD COLUMN "position" geography(POINT,4326)`, sqlQuery)
}

func Test_DropColumnSQL(t *testing.T) {
	plainGeometry := mustGeometry(t)
	managedGeometry := mustGeometry(t, spatialtypes.WithManagementFunctions())

	tests := []struct {
		name        string
		columnType  spatialtypes.ColumnType
		expectedSQL string
	}{
		{
			name:        "plain_ddl",
			columnType:  plainGeometry,
			expectedSQL: `ALTER TABLE "public"."places" DROP COLUMN "position"`,
		},
		{
			name:        "management_procedure",
			columnType:  managedGeometry,
			expectedSQL: `SELECT DropGeometryColumn('public', 'places', 'position')`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sqlQuery, err := postgresengine.DropColumnSQL("public", "places", "position", tc.columnType)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedSQL, sqlQuery)
		})
	}
}

func Test_CreateIndexSQL(t *testing.T) {
	sqlQuery, err := postgresengine.CreateIndexSQL("public", "places", "position")

	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "idx_places_position" ON "public"."places" USING GIST ("position")`, sqlQuery)
}

func Test_DDLBuilders_RejectEmptyNames(t *testing.T) {
	geometry := mustGeometry(t)

	tests := []struct {
		name        string
		schemaName  string
		tableName   string
		columnName  string
		expectedErr error
	}{
		{name: "empty_schema", schemaName: "", tableName: "places", columnName: "position", expectedErr: spatialtypes.ErrEmptySchemaName},
		{name: "empty_table", schemaName: "public", tableName: "", columnName: "position", expectedErr: spatialtypes.ErrEmptyTableName},
		{name: "empty_column", schemaName: "public", tableName: "places", columnName: "", expectedErr: spatialtypes.ErrEmptyColumnName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, addErr := postgresengine.AddColumnSQL(tc.schemaName, tc.tableName, tc.columnName, geometry)
			_, dropErr := postgresengine.DropColumnSQL(tc.schemaName, tc.tableName, tc.columnName, geometry)
			_, indexErr := postgresengine.CreateIndexSQL(tc.schemaName, tc.tableName, tc.columnName)

			assert.ErrorIs(t, addErr, tc.expectedErr)
			assert.ErrorIs(t, dropErr, tc.expectedErr)
			assert.ErrorIs(t, indexErr, tc.expectedErr)
		})
	}
}

func Test_DDLBuilders_EscapeEmbeddedQuotes(t *testing.T) {
	geometry := mustGeometry(t)

	sqlQuery, err := postgresengine.AddColumnSQL("public", `odd"name`, "position", geometry)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `"odd""name"`)
}
