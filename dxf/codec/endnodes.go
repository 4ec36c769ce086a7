package codec

// EndNodeFor maps a starter node name to its terminator name, per §6:
// "ENDSEC→SECTION, ENDTAB→TABLE, ENDBLK→BLOCK, SEQEND→POLYLINE, EOF→root".
var EndNodeFor = map[string]string{
	"SECTION":  "ENDSEC",
	"TABLE":    "ENDTAB",
	"BLOCK":    "ENDBLK",
	"POLYLINE": "SEQEND",
	"root":     "EOF",
}

// StarterFor is the reverse of EndNodeFor: given a terminator name,
// returns the starter it closes.
var StarterFor = func() map[string]string {
	m := make(map[string]string, len(EndNodeFor))
	for starter, end := range EndNodeFor {
		m[end] = starter
	}
	return m
}()

// CanonicalSections is the required, ordered section list a canonicalised
// document tree must have directly under root (§4.2 "Canonicalise").
var CanonicalSections = []string{"HEADER", "CLASSES", "TABLES", "BLOCKS", "ENTITIES", "OBJECTS"}
