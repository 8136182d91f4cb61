package analytics

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	exaggerationIterations = 250
	perplexityTolerance    = 1e-5
	perplexitySearchSteps  = 100
	minProbability         = 1e-12
)

// TSNE is an exact t-distributed stochastic neighbour embedding into two
// dimensions. It is deterministic: initialization uses PCA and falls back to
// a random layout seeded with Seed.
type TSNE struct {
	Iterations        int
	LearningRate      float64 // 0 selects max(n/EarlyExaggeration/4, 50)
	EarlyExaggeration float64
	Seed              int64
}

// DefaultTSNE returns a TSNE with 1000 iterations and early exaggeration 12.
func DefaultTSNE() *TSNE {
	return &TSNE{Iterations: 1000, EarlyExaggeration: 12, Seed: 42}
}

// Embed maps the rows of x onto two dimensions.
func (t *TSNE) Embed(x *mat.Dense, perplexity float64) (*mat.Dense, error) {
	n, _ := x.Dims()
	if n < 2 {
		return nil, errors.New("t-SNE needs at least two samples")
	}
	if perplexity <= 0 || perplexity >= float64(n) {
		return nil, fmt.Errorf("perplexity %.1f must be positive and less than the number of samples %d", perplexity, n)
	}
	iterations := t.Iterations
	if iterations <= 0 {
		iterations = 1000
	}
	exaggeration := t.EarlyExaggeration
	if exaggeration <= 0 {
		exaggeration = 12
	}
	lr := t.LearningRate
	if lr <= 0 {
		lr = math.Max(float64(n)/exaggeration/4, 50)
	}

	p := jointProbabilities(squaredDistances(x), n, perplexity)
	y := t.initialLayout(x)

	update := make([]float64, 2*n)
	gains := make([]float64, 2*n)
	floats.AddConst(1, gains)
	grad := make([]float64, 2*n)
	num := make([]float64, n*n)

	for iter := 0; iter < iterations; iter++ {
		exag, momentum := 1.0, 0.8
		if iter < exaggerationIterations {
			exag, momentum = exaggeration, 0.5
		}

		sumQ := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy := y[2*i]-y[2*j], y[2*i+1]-y[2*j+1]
				q := 1 / (1 + dx*dx + dy*dy)
				num[i*n+j], num[j*n+i] = q, q
				sumQ += 2 * q
			}
		}
		if sumQ == 0 {
			return nil, errors.New("t-SNE collapsed: all pairwise affinities vanished")
		}

		for i := range grad {
			grad[i] = 0
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				q := num[i*n+j]
				mult := 4 * (exag*p[i*n+j] - q/sumQ) * q
				grad[2*i] += mult * (y[2*i] - y[2*j])
				grad[2*i+1] += mult * (y[2*i+1] - y[2*j+1])
			}
		}

		for k := range y {
			if update[k]*grad[k] < 0 {
				gains[k] += 0.2
			} else {
				gains[k] *= 0.8
			}
			gains[k] = math.Max(gains[k], 0.01)
			update[k] = momentum*update[k] - lr*gains[k]*grad[k]
			y[k] += update[k]
		}
		recenter(y, n)

		if floats.HasNaN(y) {
			return nil, fmt.Errorf("t-SNE diverged at iteration %d", iter)
		}
	}
	return mat.NewDense(n, 2, y), nil
}

func squaredDistances(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	d := make([]float64, n*n)
	for i := 0; i < n; i++ {
		ri := x.RawRowView(i)
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(ri, x.RawRowView(j), 2)
			d[i*n+j] = dist * dist
			d[j*n+i] = dist * dist
		}
	}
	return d
}

// jointProbabilities finds per-row Gaussian precisions matching the
// perplexity by binary search, then symmetrizes the conditionals.
func jointProbabilities(dist []float64, n int, perplexity float64) []float64 {
	target := math.Log(perplexity)
	cond := make([]float64, n*n)
	row := make([]float64, n)

	for i := 0; i < n; i++ {
		minD := math.Inf(1)
		for j := 0; j < n; j++ {
			if j != i && dist[i*n+j] < minD {
				minD = dist[i*n+j]
			}
		}
		beta, lo, hi := 1.0, math.Inf(-1), math.Inf(1)
		var sum float64
		for step := 0; step < perplexitySearchSteps; step++ {
			sum = 0
			weighted := 0.0
			for j := 0; j < n; j++ {
				if j == i {
					row[j] = 0
					continue
				}
				shifted := dist[i*n+j] - minD
				row[j] = math.Exp(-shifted * beta)
				sum += row[j]
				weighted += shifted * row[j]
			}
			entropy := math.Log(sum) + beta*weighted/sum
			diff := entropy - target
			if math.Abs(diff) < perplexityTolerance {
				break
			}
			if diff > 0 {
				lo = beta
				if math.IsInf(hi, 1) {
					beta *= 2
				} else {
					beta = (beta + hi) / 2
				}
			} else {
				hi = beta
				if math.IsInf(lo, -1) {
					beta /= 2
				} else {
					beta = (beta + lo) / 2
				}
			}
		}
		for j := 0; j < n; j++ {
			cond[i*n+j] = row[j] / sum
		}
	}

	p := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			p[i*n+j] = math.Max((cond[i*n+j]+cond[j*n+i])/(2*float64(n)), minProbability)
		}
	}
	return p
}

// initialLayout projects x on its first two principal components scaled to a
// standard deviation of 1e-4, or draws a seeded random layout when PCA
// cannot provide two informative components.
func (t *TSNE) initialLayout(x *mat.Dense) []float64 {
	n, _ := x.Dims()
	if y, ok := pcaLayout(x); ok {
		return y
	}
	rng := rand.New(rand.NewSource(t.Seed))
	y := make([]float64, 2*n)
	for i := range y {
		y[i] = rng.NormFloat64() * 1e-4
	}
	return y
}

func pcaLayout(x *mat.Dense) ([]float64, bool) {
	n, d := x.Dims()
	if d < 2 {
		return nil, false
	}
	centered := mat.DenseCopyOf(x)
	for j := 0; j < d; j++ {
		mean := stat.Mean(mat.Col(nil, j, centered), nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, centered.At(i, j)-mean)
		}
	}
	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return nil, false
	}
	var v mat.Dense
	svd.VTo(&v)
	if _, vc := v.Dims(); vc < 2 {
		return nil, false
	}
	var projected mat.Dense
	projected.Mul(centered, v.Slice(0, d, 0, 2))

	first := mat.Col(nil, 0, &projected)
	sd := stat.StdDev(first, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil, false
	}
	y := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		y[2*i] = projected.At(i, 0) / sd * 1e-4
		y[2*i+1] = projected.At(i, 1) / sd * 1e-4
	}
	return y, true
}

func recenter(y []float64, n int) {
	var mx, my float64
	for i := 0; i < n; i++ {
		mx += y[2*i]
		my += y[2*i+1]
	}
	mx /= float64(n)
	my /= float64(n)
	for i := 0; i < n; i++ {
		y[2*i] -= mx
		y[2*i+1] -= my
	}
}
