package codec

import (
	"strconv"
	"strings"
)

// rangeSpec describes one of §6's group-code ranges that map onto a
// family of attribute names built from a common prefix plus an index
// suffix (x, x1, x2, ... or int_32, int_32_1, ...).
type rangeSpec struct {
	base   int
	count  int
	prefix string
	sep    string // "" for x1, float1, ...; "_" for int_32_1, bool_1, ...
}

var ranges = []rangeSpec{
	{10, 9, "x", ""},
	{20, 9, "y", ""},
	{30, 8, "z", ""},
	{40, 8, "float", ""},
	{50, 9, "angle", ""},
	{70, 9, "int", ""},
	{90, 9, "int_32", "_"},
	{280, 10, "int_8", "_"},
	{290, 10, "bool", "_"},
}

// singles maps one-off group codes (§6) directly onto attribute names.
var singles = map[int]string{
	1: "text", 2: "name", 3: "text2", 4: "text3",
	5: "handle", 105: "dimvar_handle",
	6: "linetype", 7: "textstyle", 8: "layer",
	38: "elevation", 39: "thickness", 48: "linetype_scale",
	60: "invisible", 62: "color", 66: "entities_follow", 67: "space",
	100: "subclass", 102: "control_string",
	210: "extrusion_direction_x", 220: "extrusion_direction_y", 230: "extrusion_direction_z",
	999: "comment",
}

var nameToCode map[string]int

func init() {
	nameToCode = make(map[string]int, len(singles)+64)
	for code, name := range singles {
		nameToCode[name] = code
	}
	for _, r := range ranges {
		for i := 0; i < r.count; i++ {
			nameToCode[rangeName(r, i)] = r.base + i
		}
	}
}

func rangeName(r rangeSpec, index int) string {
	if index == 0 {
		return r.prefix
	}
	return r.prefix + r.sep + strconv.Itoa(index)
}

// CodeToName maps a DXF group code to its attribute name (§6). Codes with
// no table entry fall back to the verbatim "i<code>" form.
func CodeToName(code int) string {
	if name, ok := singles[code]; ok {
		return name
	}
	for _, r := range ranges {
		if code >= r.base && code < r.base+r.count {
			return rangeName(r, code-r.base)
		}
	}
	return "i" + strconv.Itoa(code)
}

// NameToCode maps an attribute name back to its DXF group code, the
// inverse of CodeToName, used by the emitter to recover the code for
// ascending-order serialisation.
func NameToCode(name string) (int, bool) {
	if strings.HasPrefix(name, "i") {
		if n, err := strconv.Atoi(name[1:]); err == nil {
			if _, isKnown := nameToCode[name]; !isKnown {
				return n, true
			}
		}
	}
	code, ok := nameToCode[name]
	return code, ok
}

// PointIndexName returns the x/y/z attribute name for point index i
// (0 for the bare "x"/"y"/"z" attribute, i>=1 for "x1".."x8" etc.),
// implementing the §3 interleaving rule's per-index correlation.
func PointIndexName(axis byte, i int) string {
	prefix := string(axis)
	if i == 0 {
		return prefix
	}
	return prefix + strconv.Itoa(i)
}

// MaxPointIndex is the highest coordinate index sharing x/y/z members
// (bounded by the z-range, the narrowest of the three per §6).
const MaxPointIndex = 7
