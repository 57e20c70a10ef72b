package rules

const (
	// SurviveMin and SurviveMax bound the live-neighbour count a live cell needs to stay alive.
	SurviveMin = 2
	SurviveMax = 3
	// Birth is the exact live-neighbour count that brings a dead cell to life.
	Birth = 3
)

/*
ApplyConwayRules returns the next state of a cell given its live-neighbour count
and current state (B3/S23).

A live cell survives with 2 or 3 neighbours, a dead cell is born with exactly 3,
and every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == Birth
}
