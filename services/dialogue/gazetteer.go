// File: skybook/services/dialogue/gazetteer.go
package dialogue

import (
	"regexp"
	"sort"
	"strings"
)

// cityEntry is one gazetteer city: canonical name, IATA code, and the
// aliases it may appear under in free text.
type cityEntry struct {
	Name    string
	IATA    string
	Aliases []string
}

var gazetteer = []cityEntry{
	{Name: "Delhi", IATA: "DEL", Aliases: []string{"delhi", "new delhi", "del"}},
	{Name: "Mumbai", IATA: "BOM", Aliases: []string{"mumbai", "bombay", "bom"}},
	{Name: "Bangalore", IATA: "BLR", Aliases: []string{"bangalore", "bengaluru", "blr"}},
	{Name: "Chennai", IATA: "MAA", Aliases: []string{"chennai", "madras", "maa"}},
	{Name: "Kolkata", IATA: "CCU", Aliases: []string{"kolkata", "calcutta", "ccu"}},
	{Name: "Hyderabad", IATA: "HYD", Aliases: []string{"hyderabad", "hyd"}},
	{Name: "Pune", IATA: "PNQ", Aliases: []string{"pune", "pnq"}},
	{Name: "Ahmedabad", IATA: "AMD", Aliases: []string{"ahmedabad", "amd"}},
}

// cityPatterns holds one compiled whole-word pattern per gazetteer city.
var cityPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(gazetteer))
	for i, entry := range gazetteer {
		patterns[i] = regexp.MustCompile(`\b(?:` + strings.Join(entry.Aliases, "|") + `)\b`)
	}
	return patterns
}()

// findCities scans lowercased text against the gazetteer and returns the
// canonical names of all distinct cities found, ordered by first occurrence.
func findCities(lower string) []string {
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for i, pattern := range cityPatterns {
		if loc := pattern.FindStringIndex(lower); loc != nil {
			hits = append(hits, hit{name: gazetteer[i].Name, pos: loc[0]})
		}
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].pos < hits[b].pos })

	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return names
}

// CityToIATA resolves a city name (canonical or alias) to its IATA code.
// Unknown cities resolve to an empty string.
func CityToIATA(city string) string {
	lower := strings.ToLower(strings.TrimSpace(city))
	for _, entry := range gazetteer {
		if strings.ToLower(entry.Name) == lower {
			return entry.IATA
		}
		for _, alias := range entry.Aliases {
			if alias == lower {
				return entry.IATA
			}
		}
	}
	return ""
}
