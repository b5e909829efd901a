// Package isoforest implements isolation forest outlier scoring.
//
// Scores follow the usual convention: ScoreSamples returns values in
// (-1, 0] where lower means more isolated, DecisionFunction subtracts the
// contamination offset so negative values mark outliers. All randomness
// comes from the seed passed in Options, so identical input always
// produces identical scores.
package isoforest

import (
	"math"
	"math/rand"

	"github.com/crimewatch/crimewatch-backend-go/internal/stats"
)

const eulerGamma = 0.5772156649015329

// Options configures forest construction.
type Options struct {
	Trees         int     // number of trees, default 100
	MaxSamples    int     // subsample size per tree, default min(256, n)
	Contamination float64 // expected outlier fraction, sets the decision offset
	Seed          int64
}

// Forest is a fitted isolation forest.
type Forest struct {
	trees     []*treeNode
	subsample int
	offset    float64
}

type treeNode struct {
	feature int
	split   float64
	left    *treeNode
	right   *treeNode
	size    int // leaf only: samples that ended here
}

// Fit builds a forest over the given samples (rows) and fixes the decision
// offset at the contamination quantile of the training scores.
func Fit(data [][]float64, opts Options) *Forest {
	if opts.Trees <= 0 {
		opts.Trees = 100
	}
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = 256
	}
	if opts.MaxSamples > len(data) {
		opts.MaxSamples = len(data)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	heightLimit := int(math.Ceil(math.Log2(float64(opts.MaxSamples))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	f := &Forest{
		trees:     make([]*treeNode, 0, opts.Trees),
		subsample: opts.MaxSamples,
	}

	for t := 0; t < opts.Trees; t++ {
		perm := rng.Perm(len(data))
		indices := perm[:opts.MaxSamples]
		f.trees = append(f.trees, buildTree(data, indices, 0, heightLimit, rng))
	}

	trainScores := f.ScoreSamples(data)
	f.offset = stats.Quantile(trainScores, opts.Contamination)

	return f
}

func buildTree(data [][]float64, indices []int, depth, limit int, rng *rand.Rand) *treeNode {
	if depth >= limit || len(indices) <= 1 {
		return &treeNode{feature: -1, size: len(indices)}
	}

	// Only features with spread can split this node
	nFeatures := len(data[indices[0]])
	candidates := make([]int, 0, nFeatures)
	for q := 0; q < nFeatures; q++ {
		lo, hi := data[indices[0]][q], data[indices[0]][q]
		for _, i := range indices[1:] {
			v := data[i][q]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi > lo {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return &treeNode{feature: -1, size: len(indices)}
	}

	feature := candidates[rng.Intn(len(candidates))]
	lo, hi := data[indices[0]][feature], data[indices[0]][feature]
	for _, i := range indices[1:] {
		v := data[i][feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right []int
	for _, i := range indices {
		if data[i][feature] < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature: feature,
		split:   split,
		left:    buildTree(data, left, depth+1, limit, rng),
		right:   buildTree(data, right, depth+1, limit, rng),
	}
}

// pathLength walks one sample down one tree.
func (n *treeNode) pathLength(sample []float64, depth float64) float64 {
	if n.feature < 0 {
		return depth + avgPathLength(n.size)
	}
	if sample[n.feature] < n.split {
		return n.left.pathLength(sample, depth+1)
	}
	return n.right.pathLength(sample, depth+1)
}

// avgPathLength is c(n), the expected path length of an unsuccessful BST
// search over n points, used to normalize truncated paths.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	fn := float64(n)
	harmonic := math.Log(fn-1) + eulerGamma
	return 2*harmonic - 2*(fn-1)/fn
}

// ScoreSamples returns the negated anomaly score for each sample,
// in (-1, 0]. Lower values indicate stronger outliers.
func (f *Forest) ScoreSamples(data [][]float64) []float64 {
	norm := avgPathLength(f.subsample)
	scores := make([]float64, len(data))

	for i, sample := range data {
		var total float64
		for _, tree := range f.trees {
			total += tree.pathLength(sample, 0)
		}
		avg := total / float64(len(f.trees))

		anomaly := 1.0
		if norm > 0 {
			anomaly = math.Pow(2, -avg/norm)
		}
		scores[i] = -anomaly
	}

	return scores
}

// DecisionFunction returns ScoreSamples shifted by the training offset;
// negative values are outliers.
func (f *Forest) DecisionFunction(data [][]float64) []float64 {
	scores := f.ScoreSamples(data)
	for i := range scores {
		scores[i] -= f.offset
	}
	return scores
}

// Offset returns the fitted decision threshold on the raw score scale.
func (f *Forest) Offset() float64 {
	return f.offset
}
