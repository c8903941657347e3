package race

import "sort"

// Ranking is one design's final placing.
type Ranking struct {
	DesignID string  `csv:"design" json:"design_id"`
	Fitness  float64 `csv:"fitness" json:"fitness"`
	Rank     int     `csv:"rank" json:"rank"`
}

// Rank orders a snapshot's designs by descending fitness and numbers them
// 1..N. Equal fitness keeps roster order and still gets distinct ranks.
func Rank(s *Snapshot) []Ranking {
	rankings := make([]Ranking, len(s.Designs))
	for i, d := range s.Designs {
		rankings[i] = Ranking{DesignID: d.ID, Fitness: d.Fitness}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Fitness > rankings[j].Fitness
	})

	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}
