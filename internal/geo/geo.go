package geo

import "math"

// earthRadiusKm is the IUGG mean Earth radius.
const earthRadiusKm = 6371.0088

// Proximity tiers relative to the configured home coordinate.
const (
	TierNear    = "near"
	TierMid     = "mid"
	TierFar     = "far"
	TierUnknown = "unknown"
)

// HaversineKm returns the great-circle distance between two WGS84 points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// TravelMinutes estimates driving time at a flat average speed. Returns nil
// when the distance is unknown or the speed is not positive.
func TravelMinutes(distKm *float64, speedKmh float64) *int {
	if distKm == nil || speedKmh <= 0 {
		return nil
	}
	m := int(math.Round(*distKm / speedKmh * 60))
	if m < 0 {
		m = 0
	}
	return &m
}

// Tier classifies a distance against the near/mid thresholds.
func Tier(distKm *float64, nearKm, midKm float64) string {
	switch {
	case distKm == nil:
		return TierUnknown
	case *distKm <= nearKm:
		return TierNear
	case *distKm <= midKm:
		return TierMid
	default:
		return TierFar
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
