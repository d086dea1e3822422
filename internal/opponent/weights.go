package opponent

// Weights are the additive scoring terms of one difficulty tier.
// The values are hand tuned; only the qualitative behaviour matters.
type Weights struct {
	// Corner is added for the four corner squares.
	Corner float64

	// Edge is added for any square on the outer ring, corners included.
	Edge float64

	// CaptureFactor multiplies the number of discs the move flips.
	CaptureFactor float64

	// CornerAdjacent is added for squares touching a corner. It is negative to avoid giving corners away.
	CornerAdjacent float64

	// Jitter is the exclusive upper bound of the uniform random term.
	Jitter float64

	// PickWidth is the number of best candidates to choose from uniformly. Zero means all candidates.
	PickWidth int

	// Positional disables every term except the jitter when false.
	Positional bool
}

var tiers = map[Difficulty]Weights{
	Easy: {
		Jitter:    10,
		PickWidth: 0,
	},
	Medium: {
		Corner:        100,
		Edge:          20,
		CaptureFactor: 1,
		Jitter:        15,
		PickWidth:     3,
		Positional:    true,
	},
	Hard: {
		Corner:         100,
		Edge:           20,
		CaptureFactor:  2,
		CornerAdjacent: -50,
		Jitter:         5,
		PickWidth:      1,
		Positional:     true,
	},
}

// WeightsFor returns the weights of a difficulty tier.
func WeightsFor(d Difficulty) (Weights, error) {
	if err := d.Validate(); err != nil {
		return Weights{}, err
	}
	return tiers[d], nil
}
