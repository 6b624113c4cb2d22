package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSites = []Site{
	{Name: "民權總店", Lat: 25.06334, Lng: 121.52144, RadiusMeters: 200},
	{Name: "松山分店", Lat: 25.04913, Lng: 121.57901, RadiusMeters: 300},
	{Name: "宏匯百貨", Lat: 25.05965, Lng: 121.44954, RadiusMeters: 200},
}

func TestNewResolver_EmptySites(t *testing.T) {
	_, err := NewResolver(nil)
	assert.ErrorIs(t, err, ErrNoSites)

	_, err = NewResolver([]Site{})
	assert.ErrorIs(t, err, ErrNoSites)
}

func TestNewResolver_CopiesSites(t *testing.T) {
	input := []Site{{Name: "A", Lat: 25.0, Lng: 121.5, RadiusMeters: 100}}

	r, err := NewResolver(input)
	require.NoError(t, err)

	// 修改入参不应影响 resolver 内部状态
	input[0].Name = "changed"

	assert.Equal(t, "A", r.Sites()[0].Name)
}

func TestResolveNearest_AtSiteCenter(t *testing.T) {
	r, err := NewResolver(testSites)
	require.NoError(t, err)

	result := r.ResolveNearest(25.06334, 121.52144)

	assert.Equal(t, "民權總店", result.SiteName)
	assert.Equal(t, 0, result.DistanceMeters)
	assert.True(t, result.WithinRadius)
}

func TestResolveNearest_PicksNearestSite(t *testing.T) {
	r, err := NewResolver(testSites)
	require.NoError(t, err)

	// 松山分店旁边的坐标
	result := r.ResolveNearest(25.04920, 121.57910)

	assert.Equal(t, "松山分店", result.SiteName)
	assert.True(t, result.WithinRadius)
}

func TestResolveNearest_OutOfRange(t *testing.T) {
	r, err := NewResolver(testSites)
	require.NoError(t, err)

	// 高雄，离所有台北地点都很远
	result := r.ResolveNearest(22.62790, 120.30145)

	assert.False(t, result.WithinRadius)
	assert.Greater(t, result.DistanceMeters, 100000)
	// 超出范围时仍然报告最近的地点
	assert.NotEmpty(t, result.SiteName)
}

func TestResolveNearest_TieGoesToFirstConfigured(t *testing.T) {
	// 两个同圆心的地点，距离完全相同
	r, err := NewResolver([]Site{
		{Name: "first", Lat: 25.0, Lng: 121.5, RadiusMeters: 100},
		{Name: "second", Lat: 25.0, Lng: 121.5, RadiusMeters: 500},
	})
	require.NoError(t, err)

	result := r.ResolveNearest(25.0001, 121.5)

	assert.Equal(t, "first", result.SiteName)
}

func TestResolveNearest_BoundaryInclusive(t *testing.T) {
	edge := Distance(25.0, 121.5, 25.001, 121.5)

	r, err := NewResolver([]Site{
		{Name: "site", Lat: 25.0, Lng: 121.5, RadiusMeters: edge},
	})
	require.NoError(t, err)

	// 距离恰好等于半径时算范围内
	onEdge := r.ResolveNearest(25.001, 121.5)
	assert.True(t, onEdge.WithinRadius)

	beyond := r.ResolveNearest(25.0011, 121.5)
	assert.False(t, beyond.WithinRadius)
}

func TestResolveNearest_RoundsDistance(t *testing.T) {
	r, err := NewResolver([]Site{
		{Name: "site", Lat: 25.0, Lng: 121.5, RadiusMeters: 200},
	})
	require.NoError(t, err)

	raw := Distance(25.0, 121.5, 25.001, 121.5)
	result := r.ResolveNearest(25.001, 121.5)

	assert.Equal(t, int(math.Round(raw)), result.DistanceMeters)
}

func TestDistance_KnownValues(t *testing.T) {
	// 同一点
	assert.Zero(t, Distance(25.0, 121.5, 25.0, 121.5))

	// 赤道上经度 1 度约 111.19 公里
	d := Distance(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)

	// 对称性
	assert.InDelta(t,
		Distance(25.06334, 121.52144, 25.04913, 121.57901),
		Distance(25.04913, 121.57901, 25.06334, 121.52144),
		0.0001,
	)
}

func TestDistance_TaipeiLandmarks(t *testing.T) {
	// 民權總店到松山分店约 6 公里
	d := Distance(25.06334, 121.52144, 25.04913, 121.57901)
	assert.InDelta(t, 6000, d, 500)
}
