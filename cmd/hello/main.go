// hello flips a single simulated quantum coin: one qubit is put into an equal
// superposition, measured once, and the outcome counts are printed.
package main

import (
	"fmt"
	"os"

	"github.com/alan-christopher/qrng/qrng"
	"github.com/alan-christopher/qrng/qrng/simulator"
	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
)

var (
	backend = flag.String("backend", simulator.QASMName, "The simulator to run the circuit on.")
	seed    = flag.Uint64("seed", 0, "Seed for measurement randomness. Zero draws from crypto/rand.")
	verbose = flag.BoolP("verbose", "v", false, "Log circuit and backend details.")
)

func main() {
	flag.Parse()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "hello"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	sim, err := simulator.New(*backend, simulator.SourceFor(*seed))
	if err != nil {
		logger.Fatal("Selecting backend", "err", err)
	}
	g, err := qrng.NewGenerator(qrng.GeneratorOpts{Bits: 1, Simulator: sim})
	if err != nil {
		logger.Fatal("Building generator", "err", err)
	}
	logger.Debug("Running circuit", "backend", sim.Name(), "qubits", g.Bits(), "shots", 1)
	s, err := g.Generate()
	if err != nil {
		logger.Fatal("Generating bit", "err", err)
	}
	logger.Debug("Decoded", "value", s.Value)

	// The random bit generated.
	fmt.Println(s.Counts)
}
