package geo

import (
	"errors"
	"math"
)

const earthRadiusMeters = 6371000

var ErrNoSites = errors.New("geo: site list is empty")

// Site 公司打卡地点：圆心坐标 + 允许半径
type Site struct {
	Name         string
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// NearestSiteResult 最近地点判定结果，距离取整到米
type NearestSiteResult struct {
	SiteName       string
	DistanceMeters int
	AllowedRadius  float64
	WithinRadius   bool
}

// Resolver 在固定地点集合上做最近地点判定，构造后不可变
type Resolver struct {
	sites []Site
}

// NewResolver 地点集合为空属于配置错误，直接在启动期失败
func NewResolver(sites []Site) (*Resolver, error) {
	if len(sites) == 0 {
		return nil, ErrNoSites
	}

	copied := make([]Site, len(sites))
	copy(copied, sites)

	return &Resolver{sites: copied}, nil
}

// Sites 返回配置的地点副本
func (r *Resolver) Sites() []Site {
	out := make([]Site, len(r.sites))
	copy(out, r.sites)
	return out
}

// ResolveNearest 遍历全部地点取最小距离，严格小于才替换，
// 因此距离完全相同时先配置的地点胜出。
// 边界按闭区间处理：distance == radius 视为在范围内。
func (r *Resolver) ResolveNearest(lat, lng float64) NearestSiteResult {
	nearest := r.sites[0]
	minDistance := Distance(nearest.Lat, nearest.Lng, lat, lng)

	for _, site := range r.sites[1:] {
		d := Distance(site.Lat, site.Lng, lat, lng)
		if d < minDistance {
			minDistance = d
			nearest = site
		}
	}

	return NearestSiteResult{
		SiteName:       nearest.Name,
		DistanceMeters: int(math.Round(minDistance)),
		AllowedRadius:  nearest.RadiusMeters,
		WithinRadius:   minDistance <= nearest.RadiusMeters,
	}
}

// Distance 两点间 haversine 大圆距离（米）
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
