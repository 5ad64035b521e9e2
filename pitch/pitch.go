// Package pitch models Japanese pitch accent: per-mora high/low contours and
// the read-only accent dictionary they are generated from.
package pitch

// Level is the pitch of a single mora.
type Level string

const (
	High Level = "high"
	Low  Level = "low"
)

// GeneratePattern expands an accent position into a per-mora contour of
// length moraCount. Position 0 is heiban (low, then high with no drop),
// position 1 is atamadaka (high, then low), and larger positions are
// nakadaka/odaka: low onset, high through mora accentPos-1, low afterwards.
// A position equal to moraCount is odaka, the drop landing on a following
// particle. moraCount 0 yields nil.
func GeneratePattern(accentPos, moraCount int) []Level {
	if moraCount <= 0 {
		return nil
	}
	p := make([]Level, moraCount)
	switch {
	case accentPos == 0:
		p[0] = Low
		for i := 1; i < moraCount; i++ {
			p[i] = High
		}
	case accentPos == 1:
		p[0] = High
		for i := 1; i < moraCount; i++ {
			p[i] = Low
		}
	default:
		p[0] = Low
		for i := 1; i < moraCount; i++ {
			if i < accentPos {
				p[i] = High
			} else {
				p[i] = Low
			}
		}
	}
	return p
}
