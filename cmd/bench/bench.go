// bench.go draws a batch of random numbers for each entry in the cartesian
// product of a collection of different tuning parameters, e.g. simulator
// backend and bit width, and outputs a CSV of relevant statistics for each
// different combination, e.g. time taken and chi-square uniformity.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/alan-christopher/qrng/qrng"
	"github.com/alan-christopher/qrng/qrng/simulator"
	"github.com/alan-christopher/qrng/qrng/stats"
	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
)

var (
	backends = flag.StringSlice("backends", simulator.Names(), "The simulators to generate numbers on.")
	bits     = flag.IntSlice("bits", []int{1, qrng.DefaultBits}, "The widths of generated numbers.")
	samples  = flag.IntSlice("samples", []int{4096}, "The number of single-shot generations per experiment.")
	seed     = flag.Uint64("seed", 42, "Seed for measurement randomness. Zero draws from crypto/rand.")
)

var (
	inputs = []string{"backends", "bits", "samples"}
	// TODO: consider using reflection to pull this out of the Experiment data
	//   type.
	columns = []string{"Backend", "Bits", "Samples", "Mean", "ExpectedMean",
		"ChiSquare", "PValue", "OnesFraction", "Elapsed", "Succeeded"}
)

// An Experiment packages together the result of benchmarking a single
// parameterization for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	Backend string
	Bits    int
	Samples int

	// Fields corresponding to experiment results
	Mean         float64
	ExpectedMean float64
	ChiSquare    float64
	PValue       float64
	OnesFraction float64
	Elapsed      time.Duration
	Succeeded    bool
}

func main() {
	flag.Parse()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bench"})
	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(logger, inp))
	}
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			Backend: args[inpIndex("backends")].(string),
			Bits:    args[inpIndex("bits")].(int),
			Samples: args[inpIndex("samples")].(int),
		}
		if err := bench(exp); err != nil {
			logger.Error("Benching", "backend", exp.Backend, "bits", exp.Bits, "samples", exp.Samples, "err", err)
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			logger.Fatal("BUG: could not fill in line template", "err", err)
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func bench(exp *Experiment) error {
	sim, err := simulator.New(exp.Backend, simulator.SourceFor(*seed))
	if err != nil {
		return err
	}
	g, err := qrng.NewGenerator(qrng.GeneratorOpts{Bits: exp.Bits, Simulator: sim})
	if err != nil {
		return err
	}
	start := time.Now()
	values := make([]uint64, 0, exp.Samples)
	for i := 0; i < exp.Samples; i++ {
		s, err := g.Generate()
		if err != nil {
			return err
		}
		values = append(values, s.Value)
	}
	exp.Elapsed = time.Since(start)
	r, err := stats.Uniformity(values, exp.Bits)
	if err != nil {
		return err
	}
	exp.Mean = r.Mean
	exp.ExpectedMean = r.ExpectedMean
	exp.ChiSquare = r.ChiSquare
	exp.PValue = r.PValue
	exp.OnesFraction = r.OnesFraction
	exp.Succeeded = true
	return nil
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(logger *log.Logger, name string) []interface{} {
	var r []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else if v, err := flag.CommandLine.GetStringSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else {
		logger.Fatal("Unknown type for input", "name", name)
	}
	return r
}

func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
