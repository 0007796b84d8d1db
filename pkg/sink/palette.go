package sink

import "hash/fnv"

// palette holds fill colors as hex RGB with matching 256-color terminal codes.
var palette = []struct{ hex, ansi string }{
	{"#8ecae6", "117"},
	{"#ffb703", "214"},
	{"#90be6d", "107"},
	{"#f28482", "210"},
	{"#cdb4db", "183"},
	{"#84a59d", "109"},
	{"#f6bd60", "221"},
	{"#a2d2ff", "153"},
}

// colorIndex picks a palette entry from the cell id so a cell keeps its color
// across layouts.
func colorIndex(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(palette)))
}
