package geo

import (
	"sort"
	"strings"
)

// countyCentroids maps Romanian county names to an approximate centroid,
// roughly the coordinates of the county seat. Suppliers do not store exact
// coordinates, so radius matching falls back to these. Coverage is
// deliberately partial for localities: a county missing from this table
// makes its suppliers unmatchable by radius search, which is silently
// tolerated rather than treated as an error.
var countyCentroids = map[string]Coordinates{
	"alba":            {Latitude: 46.0667, Longitude: 23.5833},
	"arad":            {Latitude: 46.1833, Longitude: 21.3167},
	"arges":           {Latitude: 44.8565, Longitude: 24.8692},
	"bacau":           {Latitude: 46.5670, Longitude: 26.9146},
	"bihor":           {Latitude: 47.0667, Longitude: 21.9333},
	"bistrita-nasaud": {Latitude: 47.1333, Longitude: 24.5000},
	"botosani":        {Latitude: 47.7486, Longitude: 26.6694},
	"braila":          {Latitude: 45.2692, Longitude: 27.9575},
	"brasov":          {Latitude: 45.6500, Longitude: 25.6000},
	"bucuresti":       {Latitude: 44.4268, Longitude: 26.1025},
	"buzau":           {Latitude: 45.1500, Longitude: 26.8333},
	"calarasi":        {Latitude: 44.2000, Longitude: 27.3333},
	"caras-severin":   {Latitude: 45.3000, Longitude: 21.8833},
	"cluj":            {Latitude: 46.7833, Longitude: 23.6000},
	"constanta":       {Latitude: 44.1733, Longitude: 28.6383},
	"covasna":         {Latitude: 45.8667, Longitude: 25.7833},
	"dambovita":       {Latitude: 44.9333, Longitude: 25.4500},
	"dolj":            {Latitude: 44.3167, Longitude: 23.8000},
	"galati":          {Latitude: 45.4233, Longitude: 28.0425},
	"giurgiu":         {Latitude: 43.9000, Longitude: 25.9667},
	"gorj":            {Latitude: 45.0500, Longitude: 23.2833},
	"harghita":        {Latitude: 46.3600, Longitude: 25.8000},
	"hunedoara":       {Latitude: 45.7500, Longitude: 22.9000},
	"ialomita":        {Latitude: 44.5667, Longitude: 27.3667},
	"iasi":            {Latitude: 47.1585, Longitude: 27.6014},
	"ilfov":           {Latitude: 44.5000, Longitude: 26.1500},
	"maramures":       {Latitude: 47.6567, Longitude: 23.5881},
	"mehedinti":       {Latitude: 44.6333, Longitude: 22.6500},
	"mures":           {Latitude: 46.5500, Longitude: 24.5667},
	"neamt":           {Latitude: 46.9275, Longitude: 26.3708},
	"olt":             {Latitude: 44.4333, Longitude: 24.3667},
	"prahova":         {Latitude: 44.9500, Longitude: 26.0167},
	"salaj":           {Latitude: 47.2000, Longitude: 23.0500},
	"satu mare":       {Latitude: 47.7900, Longitude: 22.8900},
	"sibiu":           {Latitude: 45.8000, Longitude: 24.1500},
	"suceava":         {Latitude: 47.6514, Longitude: 26.2556},
	"teleorman":       {Latitude: 43.9667, Longitude: 25.3333},
	"timis":           {Latitude: 45.7489, Longitude: 21.2087},
	"tulcea":          {Latitude: 45.1667, Longitude: 28.8000},
	"vaslui":          {Latitude: 46.6407, Longitude: 27.7276},
	"valcea":          {Latitude: 45.1047, Longitude: 24.3756},
	"vrancea":         {Latitude: 45.7000, Longitude: 27.1833},
}

// diacriticReplacer folds the Romanian diacritics that appear in county and
// locality names to their ASCII counterparts, so that "Brașov" and "Brasov"
// resolve to the same centroid.
var diacriticReplacer = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"Ă", "a", "Â", "a", "Î", "i", "Ș", "s", "Ş", "s", "Ț", "t", "Ţ", "t",
)

// NormalizeName lowercases a county or locality name and folds diacritics
func NormalizeName(name string) string {
	return diacriticReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// CountyCentroid returns the approximate centroid for a county name.
// The lookup is case and diacritic insensitive.
func CountyCentroid(county string) (Coordinates, bool) {
	c, ok := countyCentroids[NormalizeName(county)]
	return c, ok
}

// MatchCounty scans a free-text value (typically an unstructured supplier
// address) for a known county name and returns the first match together
// with its centroid. This is a substring heuristic, kept because supplier
// addresses carry no structured locality key.
func MatchCounty(text string) (string, Coordinates, bool) {
	normalized := NormalizeName(text)
	for _, county := range sortedCounties {
		if strings.Contains(normalized, county) {
			return county, countyCentroids[county], true
		}
	}
	return "", Coordinates{}, false
}

// sortedCounties holds the county names in a stable order so that an
// address mentioning several counties always resolves to the same one.
// Built once at startup; MatchCounty runs on concurrent requests and
// must only read it.
var sortedCounties []string

func init() {
	sortedCounties = make([]string, 0, len(countyCentroids))
	for name := range countyCentroids {
		sortedCounties = append(sortedCounties, name)
	}
	sort.Strings(sortedCounties)
}
