package spatialtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gijs/postgis-types-go/spatialtypes"
)

func Test_ResultDecoder_PreservesSQLNull(t *testing.T) {
	geometry, err := spatialtypes.NewGeometry(spatialtypes.WithSRID(4326))
	require.NoError(t, err)

	geography, err := spatialtypes.NewGeography()
	require.NoError(t, err)

	raster := spatialtypes.NewRaster()

	assert.Nil(t, geometry.ResultDecoder()(nil))
	assert.Nil(t, geography.ResultDecoder()(nil))
	assert.Nil(t, raster.ResultDecoder()(nil))
}

func Test_ResultDecoder_CarriesBytesAndConfiguredSRID(t *testing.T) {
	tests := []struct {
		name         string
		srid         int
		expectedSRID int
	}{
		{name: "explicit_srid", srid: 4326, expectedSRID: 4326},
		{name: "negative_default_srid", srid: -1, expectedSRID: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			geometry, err := spatialtypes.NewGeometry(spatialtypes.WithSRID(tc.srid))
			require.NoError(t, err)

			rawBytes := []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0xff}

			element := geometry.ResultDecoder()(rawBytes)

			require.NotNil(t, element)
			assert.Equal(t, rawBytes, element.Data())
			assert.Equal(t, tc.expectedSRID, element.SRID())
		})
	}
}

func Test_ResultDecoder_IsReusableAcrossRows(t *testing.T) {
	geometry, err := spatialtypes.NewGeometry(spatialtypes.WithSRID(3857))
	require.NoError(t, err)

	decode := geometry.ResultDecoder()

	first := decode([]byte{0x01})
	second := decode([]byte{0x02})
	absent := decode(nil)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Nil(t, absent)
	assert.Equal(t, []byte{0x01}, first.Data())
	assert.Equal(t, []byte{0x02}, second.Data())
	assert.Equal(t, 3857, first.SRID())
	assert.Equal(t, 3857, second.SRID())
}

func Test_RasterDecoder_CarriesBytes(t *testing.T) {
	raster := spatialtypes.NewRaster()

	rawBytes := []byte{0xde, 0xad, 0xbe, 0xef}

	element := raster.ResultDecoder()(rawBytes)

	require.NotNil(t, element)
	assert.Equal(t, rawBytes, element.Data())
}

func Test_WKBElement_StringRendersHex(t *testing.T) {
	element := spatialtypes.NewWKBElement([]byte{0x01, 0xab, 0xcd}, 4326)

	assert.Equal(t, "01abcd", element.String())
}
