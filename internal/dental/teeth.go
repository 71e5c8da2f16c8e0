package dental

import "sort"

var toothNames = map[int]string{
	1: "Incisive centrale",
	2: "Incisive latérale",
	3: "Canine",
	4: "1ère prémolaire",
	5: "2ème prémolaire",
	6: "1ère molaire",
	7: "2ème molaire",
	8: "3ème molaire",
}

// chart lists the 32 adult teeth in arch drawing order. Upper teeth sit at
// y=50, lower at y=150; the right side of the mouth is drawn on the right.
var chart = buildChart()

func buildChart() []Tooth {
	quadrants := []struct {
		digit    int
		quadrant Quadrant
		y        int
		right    bool
	}{
		{1, UpperRight, 50, true},
		{2, UpperLeft, 50, false},
		{3, LowerLeft, 150, false},
		{4, LowerRight, 150, true},
	}

	teeth := make([]Tooth, 0, 32)
	for _, q := range quadrants {
		for pos := 1; pos <= 8; pos++ {
			x := 40 - 30*pos
			if q.right {
				x = 10 + 30*pos
			}
			teeth = append(teeth, Tooth{
				Number:   q.digit*10 + pos,
				Name:     toothNames[pos],
				Quadrant: q.quadrant,
				X:        x,
				Y:        q.y,
			})
		}
	}
	return teeth
}

// Teeth returns the full adult chart ordered by FDI number
func Teeth() []Tooth {
	out := make([]Tooth, len(chart))
	copy(out, chart)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func LookupTooth(number int) (Tooth, bool) {
	for _, t := range chart {
		if t.Number == number {
			return t, true
		}
	}
	return Tooth{}, false
}
