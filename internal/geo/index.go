package geo

import (
	"sort"
	"strings"

	"github.com/bmekki/fleet-analytics/internal/models"
)

// Hand-curated coordinates for the governorates the fleet serves, one entry
// per top-level administrative region. Delegation coordinates are never
// stored; they are derived on demand (see estimator.go).
var governorates = map[string]models.Location{
	"Tunis":       {Lat: 36.8065, Lon: 10.1815},
	"Ariana":      {Lat: 36.8625, Lon: 10.1956},
	"Ben Arous":   {Lat: 36.7531, Lon: 10.2189},
	"Manouba":     {Lat: 36.8101, Lon: 10.0863},
	"Nabeul":      {Lat: 36.4561, Lon: 10.7376},
	"Zaghouan":    {Lat: 36.4029, Lon: 10.1429},
	"Bizerte":     {Lat: 37.2744, Lon: 9.8739},
	"Beja":        {Lat: 36.7256, Lon: 9.1817},
	"Jendouba":    {Lat: 36.5011, Lon: 8.7802},
	"Le Kef":      {Lat: 36.1742, Lon: 8.7049},
	"Siliana":     {Lat: 36.0849, Lon: 9.3708},
	"Kairouan":    {Lat: 35.6781, Lon: 10.0963},
	"Kasserine":   {Lat: 35.1676, Lon: 8.8365},
	"Sidi Bouzid": {Lat: 35.0382, Lon: 9.4858},
	"Sousse":      {Lat: 35.8256, Lon: 10.6369},
	"Monastir":    {Lat: 35.7780, Lon: 10.8262},
	"Mahdia":      {Lat: 35.5047, Lon: 11.0622},
	"Sfax":        {Lat: 34.7406, Lon: 10.7603},
	"Gafsa":       {Lat: 34.4250, Lon: 8.7842},
	"Tozeur":      {Lat: 33.9197, Lon: 8.1335},
	"Kebili":      {Lat: 33.7044, Lon: 8.9690},
	"Gabes":       {Lat: 33.8815, Lon: 10.0982},
	"Medenine":    {Lat: 33.3549, Lon: 10.5055},
	"Tataouine":   {Lat: 32.9297, Lon: 10.4518},
}

// Coordinate looks up the curated coordinate of a governorate.
// Lookup is exact-match on the canonical name after trimming whitespace;
// an unrecognized name is a normal outcome, not an error.
func Coordinate(region string) (models.Location, bool) {
	loc, ok := governorates[strings.TrimSpace(region)]
	return loc, ok
}

// Regions returns the canonical governorate names, for dropdowns and seeding.
func Regions() []string {
	names := make([]string, 0, len(governorates))
	for name := range governorates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
