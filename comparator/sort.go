package comparator

import "github.com/neurlang/castrank/parallel"

// DisagreementSort orders entities best first using a comparison that need
// not be transitive. It repeatedly takes the remaining entity no other
// remaining entity beats, or the one with the most wins when every entity is
// beaten by someone. Ties keep the input order. The returned count is the
// number of pairs whose comparison disagrees with the order.
//
// cmp is called for every ordered pair concurrently.
func DisagreementSort[E any](entities []E, cmp func(a, b E) int) ([]E, int) {
	n := len(entities)
	raw := make([][]int, n)
	parallel.ForEach(n, parallel.Workers(), func(i int) {
		raw[i] = make([]int, n)
		for j := range entities {
			if i != j {
				raw[i][j] = cmp(entities[i], entities[j])
			}
		}
	})
	// net[i][j] > 0 when i beats j taking both directions into account
	net := make([][]int, n)
	for i := range net {
		net[i] = make([]int, n)
		for j := range net[i] {
			if i != j {
				net[i][j] = raw[i][j] - raw[j][i]
			}
		}
	}

	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}
	order := make([]int, 0, n)
	for len(order) < n {
		best, bestWins, bestUnbeaten := -1, -1, false
		for i := 0; i < n; i++ {
			if !remaining[i] {
				continue
			}
			var wins int
			unbeaten := true
			for j := 0; j < n; j++ {
				if !remaining[j] || i == j {
					continue
				}
				if net[i][j] > 0 {
					wins++
				} else if net[i][j] < 0 {
					unbeaten = false
				}
			}
			if best < 0 || (unbeaten && !bestUnbeaten) || (unbeaten == bestUnbeaten && wins > bestWins) {
				best, bestWins, bestUnbeaten = i, wins, unbeaten
			}
		}
		remaining[best] = false
		order = append(order, best)
	}

	var disagreements int
	sorted := make([]E, n)
	for x, i := range order {
		sorted[x] = entities[i]
		for _, j := range order[x+1:] {
			if net[j][i] > 0 {
				disagreements++
			}
		}
	}
	return sorted, disagreements
}
