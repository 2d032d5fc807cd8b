// Package stats checks generated values against the uniform distribution.
package stats

import (
	"github.com/alan-christopher/qrng/qrng/bitmap"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxHistogramBits bounds the width of values Uniformity will bucket.
const MaxHistogramBits = 16

// A Report summarises how closely a sample matches the uniform distribution
// over [0, 2^Bits).
type Report struct {
	Bits    int
	Samples int
	// Mean of the sample, and the mean of the uniform distribution.
	Mean, ExpectedMean float64
	// Pearson's chi-square statistic over 2^Bits buckets, and the probability
	// of a statistic at least that large under uniformity.
	ChiSquare, PValue float64
	// OnesFraction is the fraction of all sampled bits that were set.
	OnesFraction float64
}

// Uniformity builds a Report for values, each of which must fit in bits.
func Uniformity(values []uint64, bits int) (Report, error) {
	if bits < 1 || bits > MaxHistogramBits {
		return Report{}, errors.Errorf("bits must be in [1, %d], got %d", MaxHistogramBits, bits)
	}
	if len(values) == 0 {
		return Report{}, errors.New("no samples")
	}
	buckets := 1 << uint(bits)
	obs := make([]float64, buckets)
	xs := make([]float64, len(values))
	var ones int
	for i, v := range values {
		if v >= uint64(buckets) {
			return Report{}, errors.Errorf("sample %d (%d) does not fit in %d bits", i, v, bits)
		}
		obs[v]++
		xs[i] = float64(v)
		ones += bitmap.CountOnes(asBitmap(v, bits))
	}
	exp := make([]float64, buckets)
	for i := range exp {
		exp[i] = float64(len(values)) / float64(buckets)
	}
	chi := stat.ChiSquare(obs, exp)
	return Report{
		Bits:         bits,
		Samples:      len(values),
		Mean:         stat.Mean(xs, nil),
		ExpectedMean: float64(buckets-1) / 2,
		ChiSquare:    chi,
		PValue:       distuv.ChiSquared{K: float64(buckets - 1)}.Survival(chi),
		OnesFraction: float64(ones) / float64(len(values)*bits),
	}, nil
}

// BitBias returns, for each bit position, the fraction of values with that bit
// set.
func BitBias(values []uint64, bits int) []float64 {
	r := make([]float64, bits)
	if len(values) == 0 {
		return r
	}
	for _, v := range values {
		d := asBitmap(v, bits)
		for i := 0; i < bits; i++ {
			if d.Get(i) {
				r[i]++
			}
		}
	}
	for i := range r {
		r[i] /= float64(len(values))
	}
	return r
}

func asBitmap(v uint64, bits int) bitmap.Dense {
	data := make([]byte, 8)
	for i := range data {
		data[i] = byte(v >> (8 * uint(i)))
	}
	return bitmap.NewDense(data, bits)
}
