// Package city carries the embedded city table used to resolve --city into
// coordinates, an elevation, and an IANA zone.
package city

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// City is one entry of the embedded table. State is empty outside the US.
type City struct {
	Name    string
	State   string
	Country string
	Lat     float64
	Lon     float64
	ElevM   float64
	TZ      string
}

// Label is the display form used for search and the TUI picker:
// "Name, State, Country" or "Name, Country".
func (c City) Label() string {
	if c.State != "" {
		return c.Name + ", " + c.State + ", " + c.Country
	}
	return c.Name + ", " + c.Country
}

// Match is one ranked search hit.
type Match struct {
	City  City
	Score int
}

// FindExact returns the city whose name equals name, case-insensitively.
func FindExact(name string) (City, bool) {
	for _, c := range cities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return City{}, false
}

type labelSource []City

func (s labelSource) String(i int) string { return s[i].Label() }
func (s labelSource) Len() int            { return len(s) }

// Search fuzzy-matches query against the city labels and returns hits in
// descending score order.
func Search(query string) []Match {
	results := fuzzy.FindFrom(query, labelSource(cities))
	out := make([]Match, 0, len(results))
	for _, r := range results {
		out = append(out, Match{City: cities[r.Index], Score: r.Score})
	}
	return out
}

// All returns the full table in its embedded order.
func All() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

var cities = []City{
	{Name: "New York", State: "NY", Country: "US", Lat: 40.7128, Lon: -74.0060, ElevM: 10, TZ: "America/New_York"},
	{Name: "Boston", State: "MA", Country: "US", Lat: 42.3601, Lon: -71.0589, ElevM: 43, TZ: "America/New_York"},
	{Name: "Washington", State: "DC", Country: "US", Lat: 38.9072, Lon: -77.0369, ElevM: 7, TZ: "America/New_York"},
	{Name: "Miami", State: "FL", Country: "US", Lat: 25.7617, Lon: -80.1918, ElevM: 2, TZ: "America/New_York"},
	{Name: "Chicago", State: "IL", Country: "US", Lat: 41.8781, Lon: -87.6298, ElevM: 182, TZ: "America/Chicago"},
	{Name: "Houston", State: "TX", Country: "US", Lat: 29.7604, Lon: -95.3698, ElevM: 12, TZ: "America/Chicago"},
	{Name: "Denver", State: "CO", Country: "US", Lat: 39.7392, Lon: -104.9903, ElevM: 1609, TZ: "America/Denver"},
	{Name: "Phoenix", State: "AZ", Country: "US", Lat: 33.4484, Lon: -112.0740, ElevM: 331, TZ: "America/Phoenix"},
	{Name: "Seattle", State: "WA", Country: "US", Lat: 47.6062, Lon: -122.3321, ElevM: 53, TZ: "America/Los_Angeles"},
	{Name: "San Francisco", State: "CA", Country: "US", Lat: 37.7749, Lon: -122.4194, ElevM: 16, TZ: "America/Los_Angeles"},
	{Name: "Los Angeles", State: "CA", Country: "US", Lat: 34.0522, Lon: -118.2437, ElevM: 71, TZ: "America/Los_Angeles"},
	{Name: "San Diego", State: "CA", Country: "US", Lat: 32.7157, Lon: -117.1611, ElevM: 19, TZ: "America/Los_Angeles"},
	{Name: "Anchorage", State: "AK", Country: "US", Lat: 61.2181, Lon: -149.9003, ElevM: 31, TZ: "America/Anchorage"},
	{Name: "Honolulu", State: "HI", Country: "US", Lat: 21.3069, Lon: -157.8583, ElevM: 6, TZ: "Pacific/Honolulu"},
	{Name: "Toronto", Country: "CA", Lat: 43.6532, Lon: -79.3832, ElevM: 76, TZ: "America/Toronto"},
	{Name: "Vancouver", Country: "CA", Lat: 49.2827, Lon: -123.1207, ElevM: 70, TZ: "America/Vancouver"},
	{Name: "Montreal", Country: "CA", Lat: 45.5017, Lon: -73.5673, ElevM: 36, TZ: "America/Toronto"},
	{Name: "Mexico City", Country: "MX", Lat: 19.4326, Lon: -99.1332, ElevM: 2240, TZ: "America/Mexico_City"},
	{Name: "Bogota", Country: "CO", Lat: 4.7110, Lon: -74.0721, ElevM: 2640, TZ: "America/Bogota"},
	{Name: "Quito", Country: "EC", Lat: -0.1807, Lon: -78.4678, ElevM: 2850, TZ: "America/Guayaquil"},
	{Name: "Lima", Country: "PE", Lat: -12.0464, Lon: -77.0428, ElevM: 154, TZ: "America/Lima"},
	{Name: "Santiago", Country: "CL", Lat: -33.4489, Lon: -70.6693, ElevM: 520, TZ: "America/Santiago"},
	{Name: "Buenos Aires", Country: "AR", Lat: -34.6037, Lon: -58.3816, ElevM: 25, TZ: "America/Argentina/Buenos_Aires"},
	{Name: "Sao Paulo", Country: "BR", Lat: -23.5505, Lon: -46.6333, ElevM: 760, TZ: "America/Sao_Paulo"},
	{Name: "Rio de Janeiro", Country: "BR", Lat: -22.9068, Lon: -43.1729, ElevM: 2, TZ: "America/Sao_Paulo"},
	{Name: "Reykjavik", Country: "IS", Lat: 64.1466, Lon: -21.9426, ElevM: 45, TZ: "Atlantic/Reykjavik"},
	{Name: "Dublin", Country: "IE", Lat: 53.3498, Lon: -6.2603, ElevM: 20, TZ: "Europe/Dublin"},
	{Name: "London", Country: "GB", Lat: 51.5074, Lon: -0.1278, ElevM: 11, TZ: "Europe/London"},
	{Name: "Lisbon", Country: "PT", Lat: 38.7223, Lon: -9.1393, ElevM: 2, TZ: "Europe/Lisbon"},
	{Name: "Madrid", Country: "ES", Lat: 40.4168, Lon: -3.7038, ElevM: 667, TZ: "Europe/Madrid"},
	{Name: "Paris", Country: "FR", Lat: 48.8566, Lon: 2.3522, ElevM: 35, TZ: "Europe/Paris"},
	{Name: "Amsterdam", Country: "NL", Lat: 52.3676, Lon: 4.9041, ElevM: -2, TZ: "Europe/Amsterdam"},
	{Name: "Brussels", Country: "BE", Lat: 50.8503, Lon: 4.3517, ElevM: 13, TZ: "Europe/Brussels"},
	{Name: "Berlin", Country: "DE", Lat: 52.5200, Lon: 13.4050, ElevM: 34, TZ: "Europe/Berlin"},
	{Name: "Zurich", Country: "CH", Lat: 47.3769, Lon: 8.5417, ElevM: 408, TZ: "Europe/Zurich"},
	{Name: "Rome", Country: "IT", Lat: 41.9028, Lon: 12.4964, ElevM: 21, TZ: "Europe/Rome"},
	{Name: "Vienna", Country: "AT", Lat: 48.2082, Lon: 16.3738, ElevM: 171, TZ: "Europe/Vienna"},
	{Name: "Prague", Country: "CZ", Lat: 50.0755, Lon: 14.4378, ElevM: 200, TZ: "Europe/Prague"},
	{Name: "Warsaw", Country: "PL", Lat: 52.2297, Lon: 21.0122, ElevM: 100, TZ: "Europe/Warsaw"},
	{Name: "Stockholm", Country: "SE", Lat: 59.3293, Lon: 18.0686, ElevM: 28, TZ: "Europe/Stockholm"},
	{Name: "Oslo", Country: "NO", Lat: 59.9139, Lon: 10.7522, ElevM: 23, TZ: "Europe/Oslo"},
	{Name: "Helsinki", Country: "FI", Lat: 60.1699, Lon: 24.9384, ElevM: 16, TZ: "Europe/Helsinki"},
	{Name: "Longyearbyen", Country: "NO", Lat: 78.2232, Lon: 15.6267, ElevM: 2, TZ: "Arctic/Longyearbyen"},
	{Name: "Athens", Country: "GR", Lat: 37.9838, Lon: 23.7275, ElevM: 70, TZ: "Europe/Athens"},
	{Name: "Istanbul", Country: "TR", Lat: 41.0082, Lon: 28.9784, ElevM: 39, TZ: "Europe/Istanbul"},
	{Name: "Moscow", Country: "RU", Lat: 55.7558, Lon: 37.6173, ElevM: 156, TZ: "Europe/Moscow"},
	{Name: "Kyiv", Country: "UA", Lat: 50.4501, Lon: 30.5234, ElevM: 179, TZ: "Europe/Kyiv"},
	{Name: "Cairo", Country: "EG", Lat: 30.0444, Lon: 31.2357, ElevM: 23, TZ: "Africa/Cairo"},
	{Name: "Casablanca", Country: "MA", Lat: 33.5731, Lon: -7.5898, ElevM: 27, TZ: "Africa/Casablanca"},
	{Name: "Lagos", Country: "NG", Lat: 6.5244, Lon: 3.3792, ElevM: 41, TZ: "Africa/Lagos"},
	{Name: "Nairobi", Country: "KE", Lat: -1.2921, Lon: 36.8219, ElevM: 1795, TZ: "Africa/Nairobi"},
	{Name: "Johannesburg", Country: "ZA", Lat: -26.2041, Lon: 28.0473, ElevM: 1753, TZ: "Africa/Johannesburg"},
	{Name: "Cape Town", Country: "ZA", Lat: -33.9249, Lon: 18.4241, ElevM: 25, TZ: "Africa/Johannesburg"},
	{Name: "Dubai", Country: "AE", Lat: 25.2048, Lon: 55.2708, ElevM: 5, TZ: "Asia/Dubai"},
	{Name: "Tehran", Country: "IR", Lat: 35.6892, Lon: 51.3890, ElevM: 1190, TZ: "Asia/Tehran"},
	{Name: "Karachi", Country: "PK", Lat: 24.8607, Lon: 67.0011, ElevM: 8, TZ: "Asia/Karachi"},
	{Name: "Delhi", Country: "IN", Lat: 28.7041, Lon: 77.1025, ElevM: 216, TZ: "Asia/Kolkata"},
	{Name: "Mumbai", Country: "IN", Lat: 19.0760, Lon: 72.8777, ElevM: 14, TZ: "Asia/Kolkata"},
	{Name: "Kathmandu", Country: "NP", Lat: 27.7172, Lon: 85.3240, ElevM: 1400, TZ: "Asia/Kathmandu"},
	{Name: "Dhaka", Country: "BD", Lat: 23.8103, Lon: 90.4125, ElevM: 4, TZ: "Asia/Dhaka"},
	{Name: "Bangkok", Country: "TH", Lat: 13.7563, Lon: 100.5018, ElevM: 2, TZ: "Asia/Bangkok"},
	{Name: "Singapore", Country: "SG", Lat: 1.3521, Lon: 103.8198, ElevM: 15, TZ: "Asia/Singapore"},
	{Name: "Jakarta", Country: "ID", Lat: -6.2088, Lon: 106.8456, ElevM: 8, TZ: "Asia/Jakarta"},
	{Name: "Hong Kong", Country: "HK", Lat: 22.3193, Lon: 114.1694, ElevM: 9, TZ: "Asia/Hong_Kong"},
	{Name: "Shanghai", Country: "CN", Lat: 31.2304, Lon: 121.4737, ElevM: 4, TZ: "Asia/Shanghai"},
	{Name: "Beijing", Country: "CN", Lat: 39.9042, Lon: 116.4074, ElevM: 44, TZ: "Asia/Shanghai"},
	{Name: "Seoul", Country: "KR", Lat: 37.5665, Lon: 126.9780, ElevM: 38, TZ: "Asia/Seoul"},
	{Name: "Tokyo", Country: "JP", Lat: 35.6895, Lon: 139.6917, ElevM: 40, TZ: "Asia/Tokyo"},
	{Name: "Perth", Country: "AU", Lat: -31.9505, Lon: 115.8605, ElevM: 31, TZ: "Australia/Perth"},
	{Name: "Melbourne", Country: "AU", Lat: -37.8136, Lon: 144.9631, ElevM: 31, TZ: "Australia/Melbourne"},
	{Name: "Sydney", Country: "AU", Lat: -33.8688, Lon: 151.2093, ElevM: 58, TZ: "Australia/Sydney"},
	{Name: "Brisbane", Country: "AU", Lat: -27.4698, Lon: 153.0251, ElevM: 27, TZ: "Australia/Brisbane"},
	{Name: "Auckland", Country: "NZ", Lat: -36.8485, Lon: 174.7633, ElevM: 196, TZ: "Pacific/Auckland"},
	{Name: "Wellington", Country: "NZ", Lat: -41.2866, Lon: 174.7756, ElevM: 13, TZ: "Pacific/Auckland"},
	{Name: "Ushuaia", Country: "AR", Lat: -54.8019, Lon: -68.3030, ElevM: 23, TZ: "America/Argentina/Ushuaia"},
}
