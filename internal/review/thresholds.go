package review

import "math"

// lossCurve holds the quadratic coefficients of one grade's tolerance for
// evaluation loss, evaluated at x = |preEval| centipawns.
type lossCurve struct {
	a, b, c float64
}

var lossCurves = map[Classification]lossCurve{
	Best:       {a: 0.0001, b: 0.0236, c: -3.7143},
	Excellent:  {a: 0.0002, b: 0.1231, c: 27.5455},
	Good:       {a: 0.0002, b: 0.2643, c: 60.5455},
	Inaccuracy: {a: 0.0002, b: 0.3624, c: 108.0909},
	Miss:       {a: 0.00025, b: 0.38255, c: 166.9541},
	Mistake:    {a: 0.0003, b: 0.4027, c: 225.8182},
}

// centipawnOrder is the walk order when grading by evaluation loss. The
// first grade whose tolerance covers the loss wins, so the least severe
// fitting grade is always picked.
var centipawnOrder = []Classification{Best, Excellent, Good, Inaccuracy, Miss, Mistake}

// MaxLoss returns the largest evaluation loss, in centipawns, still
// acceptable for the grade at the given pre-move evaluation. Tolerance
// grows with the evaluation's magnitude. Grades without a curve have no
// limit.
func MaxLoss(c Classification, preEval float64) float64 {
	curve, ok := lossCurves[c]
	if !ok {
		return math.Inf(1)
	}
	x := math.Abs(preEval)
	return math.Max(curve.a*x*x+curve.b*x+curve.c, 0)
}
