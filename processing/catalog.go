// Package processing turns raw session documents into the derived analysis
// table: timestamp normalization, per-session event metrics, group-signal
// extraction, group reconstruction, derived variables, filtering, quality
// reporting, and CSV export. Everything here is a pure in-memory transform;
// the input is never mutated.
package processing

// Study catalog membership. Groups 1 and 2 saw the low-variety catalog,
// groups 3 and 4 the high-variety catalog; a product in the exclusive set
// could only have been shown under high variety.
var (
	LowVarietyProducts   = map[int]bool{1: true, 6: true, 10: true, 11: true, 14: true}
	HighVarietyProducts  = map[int]bool{}
	HighVarietyExclusive = map[int]bool{}
)

func init() {
	for id := 1; id <= 15; id++ {
		HighVarietyProducts[id] = true
		if !LowVarietyProducts[id] {
			HighVarietyExclusive[id] = true
		}
	}
}

// Group definitions:
//   1: low variety, no AR
//   2: low variety, AR
//   3: high variety, no AR
//   4: high variety, AR

// VarietyForGroup maps a condition label to its variety level. ok is false
// for anything outside {1,2,3,4}.
func VarietyForGroup(group int) (variety string, ok bool) {
	switch group {
	case 1, 2:
		return "low", true
	case 3, 4:
		return "high", true
	default:
		return "", false
	}
}

// ARForGroup maps a condition label to its AR condition. ok is false for
// anything outside {1,2,3,4}.
func ARForGroup(group int) (arEnabled bool, ok bool) {
	switch group {
	case 2, 4:
		return true, true
	case 1, 3:
		return false, true
	default:
		return false, false
	}
}
