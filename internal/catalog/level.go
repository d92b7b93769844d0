package catalog

// Skill level names.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
	LevelUnknown      = "Unknown"
)

type band struct {
	name    string
	low, hi int
}

// Bands are checked in order with inclusive bounds, so a boundary score
// belongs to the lower band.
var bands = []band{
	{LevelBeginner, 0, 100},
	{LevelIntermediate, 100, 200},
	{LevelAdvanced, 200, 300},
	{LevelExpert, 300, 400},
}

// Level returns the skill level for a quiz score.
func Level(score int) string {
	for _, b := range bands {
		if b.low <= score && score <= b.hi {
			return b.name
		}
	}
	return LevelUnknown
}
