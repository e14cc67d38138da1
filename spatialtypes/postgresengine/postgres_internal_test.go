package postgresengine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gijs/postgis-types-go/spatialtypes"
	"github.com/gijs/postgis-types-go/spatialtypes/postgresengine/internal/adapters"
)

// fakeDBAdapter serves canned rows keyed by a substring of the query and
// records every statement, so engine behavior is testable without a live
// database.
type fakeDBAdapter struct {
	rowsByQueryPart map[string][][]any
	queried         []string
	executed        []string
}

func newFakeDBAdapter() *fakeDBAdapter {
	return &fakeDBAdapter{rowsByQueryPart: make(map[string][][]any)}
}

func (f *fakeDBAdapter) stubRows(queryPart string, rows [][]any) {
	f.rowsByQueryPart[queryPart] = rows
}

func (f *fakeDBAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queried = append(f.queried, query)

	for queryPart, rows := range f.rowsByQueryPart {
		if strings.Contains(query, queryPart) {
			return &fakeRows{rows: rows}, nil
		}
	}

	return &fakeRows{}, nil
}

func (f *fakeDBAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.executed = append(f.executed, query)
	return fakeResult{}, nil
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}

	r.idx++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]

	if len(dest) != len(row) {
		return fmt.Errorf("expected %d scan destinations, got %d", len(row), len(dest))
	}

	for i, target := range dest {
		switch typed := target.(type) {
		case *string:
			*typed = row[i].(string)
		case *int:
			*typed = row[i].(int)
		case *[]byte:
			if row[i] == nil {
				*typed = nil
			} else {
				*typed = row[i].([]byte)
			}
		default:
			return fmt.Errorf("unsupported scan destination %T", target)
		}
	}

	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

type fakeResult struct{}

func (fakeResult) RowsAffected() (int64, error) {
	return 1, nil
}

func newTestManager(t *testing.T, fake *fakeDBAdapter, options ...Option) SchemaManager {
	t.Helper()

	manager, err := newSchemaManager(fake, options...)
	require.NoError(t, err)

	return manager
}

func Test_InspectColumns_MapsCatalogRowsThroughTheRegistry(t *testing.T) {
	fake := newFakeDBAdapter()
	fake.stubRows(viewGeometryColumns, [][]any{{"position", "POINT", "4326", 2}})
	fake.stubRows(viewGeographyColumns, [][]any{{"region", "POLYGON", "4326", 2}})
	fake.stubRows(viewRasterColumns, [][]any{{"tile"}})

	manager := newTestManager(t, fake)

	columns, err := manager.InspectColumns(context.Background(), "places")

	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "position", columns[0].ColumnName)
	assert.Equal(t, "geometry(POINT,4326)", columns[0].ColumnType.ColumnDDL())

	assert.Equal(t, "region", columns[1].ColumnName)
	assert.Equal(t, "geography(POLYGON,4326)", columns[1].ColumnType.ColumnDDL())

	assert.Equal(t, "tile", columns[2].ColumnName)
	assert.Equal(t, "raster", columns[2].ColumnType.ColumnDDL())
}

func Test_InspectColumns_QueriesAllThreeCatalogViews(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake)

	columns, err := manager.InspectColumns(context.Background(), "places")

	require.NoError(t, err)
	assert.Empty(t, columns)
	require.Len(t, fake.queried, 3)
	assert.Contains(t, fake.queried[0], viewGeometryColumns)
	assert.Contains(t, fake.queried[1], viewGeographyColumns)
	assert.Contains(t, fake.queried[2], viewRasterColumns)
}

func Test_InspectColumns_PropagatesSRIDCoercionFailure(t *testing.T) {
	fake := newFakeDBAdapter()
	fake.stubRows(viewGeometryColumns, [][]any{{"position", "POINT", "not-a-number", 2}})

	manager := newTestManager(t, fake)

	_, err := manager.InspectColumns(context.Background(), "places")

	require.Error(t, err)
	assert.ErrorIs(t, err, spatialtypes.ErrInspectingColumnsFailed)
	assert.ErrorIs(t, err, spatialtypes.ErrInvalidSRID)
}

func Test_InspectColumns_FailsForUnregisteredTypeName(t *testing.T) {
	fake := newFakeDBAdapter()
	fake.stubRows(viewGeometryColumns, [][]any{{"position", "POINT", "4326", 2}})

	manager := newTestManager(t, fake, WithRegistry(spatialtypes.NewRegistry()))

	_, err := manager.InspectColumns(context.Background(), "places")

	require.Error(t, err)
	assert.ErrorIs(t, err, spatialtypes.ErrUnknownColumnType)
}

func Test_InspectColumns_RejectsEmptyTableName(t *testing.T) {
	manager := newTestManager(t, newFakeDBAdapter())

	_, err := manager.InspectColumns(context.Background(), "")

	assert.ErrorIs(t, err, spatialtypes.ErrEmptyTableName)
}

func Test_SelectGeometries_DecodesRowsAndPreservesNull(t *testing.T) {
	fake := newFakeDBAdapter()
	fake.stubRows(`FROM "public"."places"`, [][]any{
		{[]byte{0x01, 0x02, 0x03}},
		{nil},
	})

	manager := newTestManager(t, fake)

	geometry, err := spatialtypes.NewGeometry(spatialtypes.WithSRID(4326))
	require.NoError(t, err)

	elements, selectErr := manager.SelectGeometries(context.Background(), "places", "position", geometry)

	require.NoError(t, selectErr)
	require.Len(t, elements, 2)

	require.NotNil(t, elements[0])
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, elements[0].Data())
	assert.Equal(t, 4326, elements[0].SRID())

	assert.Nil(t, elements[1])

	require.Len(t, fake.queried, 1)
	assert.Contains(t, fake.queried[0], `ST_AsBinary("position")`)
}

func Test_SelectRasters_PassesColumnThroughUnwrapped(t *testing.T) {
	fake := newFakeDBAdapter()
	fake.stubRows(`FROM "public"."tiles"`, [][]any{
		{[]byte{0xaa}},
		{nil},
	})

	manager := newTestManager(t, fake)

	elements, err := manager.SelectRasters(context.Background(), "tiles", "tile", spatialtypes.NewRaster())

	require.NoError(t, err)
	require.Len(t, elements, 2)
	require.NotNil(t, elements[0])
	assert.Equal(t, []byte{0xaa}, elements[0].Data())
	assert.Nil(t, elements[1])

	require.Len(t, fake.queried, 1)
	assert.NotContains(t, fake.queried[0], "ST_AsBinary")
}

func Test_InsertGeometry_WrapsTheBindValue(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake)

	geometry, err := spatialtypes.NewGeometry(spatialtypes.WithKind(spatialtypes.KindPoint), spatialtypes.WithSRID(4326))
	require.NoError(t, err)

	insertErr := manager.InsertGeometry(context.Background(), "places", "position", geometry, "POINT(1 2)")

	require.NoError(t, insertErr)
	require.Len(t, fake.executed, 1)
	assert.Contains(t, fake.executed[0], `INSERT INTO "public"."places"`)
	assert.Contains(t, fake.executed[0], `ST_GeomFromText('POINT(1 2)')`)
}

func Test_AddColumn_CreatesIndexWhenRequested(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake)

	withIndex, err := spatialtypes.NewGeometry()
	require.NoError(t, err)

	require.NoError(t, manager.AddColumn(context.Background(), "places", "position", withIndex))
	require.Len(t, fake.executed, 2)
	assert.Contains(t, fake.executed[0], "ALTER TABLE")
	assert.Contains(t, fake.executed[1], "CREATE INDEX")
	assert.Contains(t, fake.executed[1], "GIST")
}

func Test_AddColumn_SkipsIndexWhenNotRequested(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake)

	withoutIndex, err := spatialtypes.NewGeometry(spatialtypes.WithoutSpatialIndex())
	require.NoError(t, err)

	require.NoError(t, manager.AddColumn(context.Background(), "places", "position", withoutIndex))
	require.Len(t, fake.executed, 1)
	assert.Contains(t, fake.executed[0], "ALTER TABLE")
}

func Test_DropColumn_ExecutesTheDropStatement(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake)

	geometry, err := spatialtypes.NewGeometry(spatialtypes.WithManagementFunctions())
	require.NoError(t, err)

	require.NoError(t, manager.DropColumn(context.Background(), "places", "position", geometry))
	require.Len(t, fake.executed, 1)
	assert.Contains(t, fake.executed[0], "DropGeometryColumn")
}

func Test_SchemaOption_SetsTheSchemaUsedInStatements(t *testing.T) {
	fake := newFakeDBAdapter()
	manager := newTestManager(t, fake, WithSchemaName("gisdata"))

	geometry, err := spatialtypes.NewGeometry()
	require.NoError(t, err)

	require.NoError(t, manager.AddColumn(context.Background(), "places", "position", geometry))
	assert.Contains(t, fake.executed[0], `"gisdata"."places"`)
}
