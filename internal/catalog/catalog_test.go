package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("../../data")
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, "서울특별시", c.City)
	assert.Contains(t, c.GuNames(), "강남구")
	assert.NotEmpty(t, c.Categories())
}

func TestHierarchy(t *testing.T) {
	c := loadTestCatalog(t)

	dongs := c.DongNames("강남구")
	assert.Contains(t, dongs, "역삼동")

	zones := c.Zones("강남구", "역삼동")
	require.NotEmpty(t, zones)

	z, ok := c.ZoneByCode("강남구", "역삼동", zones[0].Code)
	require.True(t, ok)
	assert.Equal(t, zones[0].Name, z.Name)
}

func TestZoneByCode_RejectsStaleSelection(t *testing.T) {
	c := loadTestCatalog(t)

	zones := c.Zones("강남구", "역삼동")
	require.NotEmpty(t, zones)

	// A zone code from 역삼동 must not resolve under a different dong, so a
	// selection left over after the user changes 동 is invalid.
	_, ok := c.ZoneByCode("강남구", "논현동", zones[0].Code)
	assert.False(t, ok)
	_, ok = c.ZoneByCode("마포구", "서교동", zones[0].Code)
	assert.False(t, ok)
}

func TestUnknownLookups(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Nil(t, c.DongNames("없는구"))
	assert.Nil(t, c.Zones("강남구", "없는동"))
	_, ok := c.CategoryByCode("CS999999")
	assert.False(t, ok)
}

func TestCategoryByCode(t *testing.T) {
	c := loadTestCatalog(t)
	cat, ok := c.CategoryByCode("CS100001")
	require.True(t, ok)
	assert.Equal(t, "한식", cat.Name)
}
