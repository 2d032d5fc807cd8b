// randbyte builds a register of eight qubits, resets each to |0⟩, puts each
// into superposition, and reads the register back as a random number.
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
	backend = flag.String("backend", simulator.StatevectorName, "The simulator to run the circuit on.")
	bits    = flag.Int("bits", qrng.DefaultBits, "The width of the generated number.")
	seed    = flag.Uint64("seed", 0, "Seed for measurement randomness. Zero draws from crypto/rand.")
	verbose = flag.BoolP("verbose", "v", false, "Log circuit and backend details.")
)

func main() {
	flag.Parse()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "randbyte"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	sim, err := simulator.New(*backend, simulator.SourceFor(*seed))
	if err != nil {
		logger.Fatal("Selecting backend", "err", err)
	}
	g, err := qrng.NewGenerator(qrng.GeneratorOpts{Bits: *bits, Simulator: sim})
	if err != nil {
		logger.Fatal("Building generator", "err", err)
	}
	logger.Debug("Running circuit", "backend", sim.Name(), "qubits", g.Bits())
	s, err := g.Generate()
	if err != nil {
		logger.Fatal("Generating number", "err", err)
	}

	fmt.Println("counts:", s.Counts)
	values, err := qrng.DecodeAll(s.Counts)
	if err != nil {
		logger.Fatal("Decoding counts", "counts", s.Counts, "err", err)
	}
	for _, n := range values {
		fmt.Println("Random number:", n)
	}
}
