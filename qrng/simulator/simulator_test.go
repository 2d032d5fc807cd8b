package simulator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/alan-christopher/qrng/qrng/circuit"
	"github.com/alan-christopher/qrng/qrng/result"
)

func mustCircuit(t *testing.T, nq, nc int, build func(c *circuit.Circuit) error) *circuit.Circuit {
	c, err := circuit.New(nq, nc)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	if err := build(c); err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return c
}

func allSimulators(seed uint64) []Simulator {
	return []Simulator{
		NewSampler(NewSeededSource(seed)),
		NewStatevector(NewSeededSource(seed)),
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{QASMName, StatevectorName} {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, nil)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if s.Name() != name {
				t.Errorf("Name() == %q, want %q", s.Name(), name)
			}
		})
	}
	if _, err := New("ibmq_hardware", nil); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(\"ibmq_hardware\") error = %v, want ErrUnknownBackend", err)
	}
	if want := []string{QASMName, StatevectorName}; !reflect.DeepEqual(Names(), want) {
		t.Errorf("Names() == %v, want %v", Names(), want)
	}
}

func TestDeterministicCircuits(t *testing.T) {
	tcs := []struct {
		name  string
		nq    int
		nc    int
		build func(c *circuit.Circuit) error
		eout  string
	}{
		{
			name:  "measure zero",
			nq:    1,
			nc:    1,
			build: func(c *circuit.Circuit) error { return c.Measure(0, 0) },
			eout:  "0",
		}, {
			name: "x then measure",
			nq:   1,
			nc:   1,
			build: func(c *circuit.Circuit) error {
				if err := c.X(0); err != nil {
					return err
				}
				return c.Measure(0, 0)
			},
			eout: "1",
		}, {
			name: "qubit 0 lands in rune 0",
			nq:   8,
			nc:   8,
			build: func(c *circuit.Circuit) error {
				if err := c.X(0); err != nil {
					return err
				}
				return c.MeasureAll()
			},
			eout: "10000000",
		}, {
			name: "h h is identity",
			nq:   2,
			nc:   2,
			build: func(c *circuit.Circuit) error {
				for _, f := range []func() error{
					func() error { return c.H(1) },
					func() error { return c.H(1) },
					func() error { return c.X(1) },
				} {
					if err := f(); err != nil {
						return err
					}
				}
				return c.MeasureAll()
			},
			eout: "01",
		}, {
			name: "reset after x",
			nq:   1,
			nc:   1,
			build: func(c *circuit.Circuit) error {
				if err := c.X(0); err != nil {
					return err
				}
				if err := c.Reset(0); err != nil {
					return err
				}
				return c.Measure(0, 0)
			},
			eout: "0",
		}, {
			name: "unmeasured clbits read zero",
			nq:   1,
			nc:   3,
			build: func(c *circuit.Circuit) error {
				if err := c.X(0); err != nil {
					return err
				}
				return c.Measure(0, 2)
			},
			eout: "001",
		}, {
			name: "measure after measure",
			nq:   1,
			nc:   2,
			build: func(c *circuit.Circuit) error {
				if err := c.Measure(0, 0); err != nil {
					return err
				}
				if err := c.X(0); err != nil {
					return err
				}
				return c.Measure(0, 1)
			},
			eout: "01",
		},
	}

	for _, tc := range tcs {
		for _, s := range allSimulators(7) {
			t.Run(fmt.Sprintf("%s/%s", s.Name(), tc.name), func(t *testing.T) {
				c := mustCircuit(t, tc.nq, tc.nc, tc.build)
				counts, err := s.Run(c, 10)
				if err != nil {
					t.Fatalf("Run: %v", err)
				}
				want := []result.Entry{{Bits: tc.eout, Count: 10}}
				if got := counts.Entries(); !reflect.DeepEqual(got, want) {
					t.Errorf("Run() == %v, want %v", got, want)
				}
			})
		}
	}
}

func TestRandomBitsKeys(t *testing.T) {
	for _, s := range allSimulators(11) {
		for _, n := range []int{1, 8} {
			t.Run(fmt.Sprintf("%s/%d", s.Name(), n), func(t *testing.T) {
				c, err := circuit.RandomBits(n)
				if err != nil {
					t.Fatalf("RandomBits: %v", err)
				}
				counts, err := s.Run(c, 1)
				if err != nil {
					t.Fatalf("Run: %v", err)
				}
				key, err := counts.Single()
				if err != nil {
					t.Fatalf("Single: %v", err)
				}
				if len(key) != n {
					t.Errorf("key %q has len %d, want %d", key, len(key), n)
				}
				for _, r := range key {
					if r != '0' && r != '1' {
						t.Errorf("key %q has rune %q", key, r)
					}
				}
			})
		}
	}
}

func TestFairCoin(t *testing.T) {
	const shots = 20000
	for _, s := range allSimulators(1234) {
		t.Run(s.Name(), func(t *testing.T) {
			c, err := circuit.RandomBits(1)
			if err != nil {
				t.Fatalf("RandomBits: %v", err)
			}
			counts, err := s.Run(c, shots)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if counts.Shots() != shots {
				t.Fatalf("Shots() == %d, want %d", counts.Shots(), shots)
			}
			ones, _ := counts.Get("1")
			// Five standard deviations of a fair binomial.
			if d := math.Abs(float64(ones) - shots/2); d > 5*math.Sqrt(shots/4) {
				t.Errorf("got %d ones in %d shots", ones, shots)
			}
		})
	}
}

func TestSeededRunsRepeat(t *testing.T) {
	c, err := circuit.RandomBits(8)
	if err != nil {
		t.Fatalf("RandomBits: %v", err)
	}
	for i, s := range allSimulators(99) {
		again := allSimulators(99)[i]
		a, err := s.Run(c, 50)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		b, err := again.Run(c, 50)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !reflect.DeepEqual(a.Entries(), b.Entries()) {
			t.Errorf("%s: same seed produced %v and %v", s.Name(), a, b)
		}
	}
}

func TestRunValidation(t *testing.T) {
	c, err := circuit.RandomBits(1)
	if err != nil {
		t.Fatalf("RandomBits: %v", err)
	}
	for _, s := range allSimulators(1) {
		if _, err := s.Run(nil, 1); err == nil {
			t.Errorf("%s: Run(nil) returned nil error", s.Name())
		}
		if _, err := s.Run(c, 0); err == nil {
			t.Errorf("%s: Run(c, 0) returned nil error", s.Name())
		}
	}
	wide, err := circuit.RandomBits(MaxStatevectorQubits + 1)
	if err != nil {
		t.Fatalf("RandomBits: %v", err)
	}
	if _, err := NewStatevector(CryptoSource{}).Run(wide, 1); !errors.Is(err, ErrTooManyQubits) {
		t.Errorf("Run(wide) error = %v, want ErrTooManyQubits", err)
	}
}

func TestTerminalMeasurements(t *testing.T) {
	c, err := circuit.RandomBits(3)
	if err != nil {
		t.Fatalf("RandomBits: %v", err)
	}
	if !terminalMeasurements(c.Ops()) {
		t.Errorf("RandomBits circuit reported non-terminal measurements")
	}
	if err := c.H(1); err != nil {
		t.Fatalf("H: %v", err)
	}
	if terminalMeasurements(c.Ops()) {
		t.Errorf("gate after measurement reported terminal")
	}
}

func TestCryptoSource(t *testing.T) {
	var src CryptoSource
	seen := make(map[uint64]bool)
	for i := 0; i < 16; i++ {
		seen[src.Uint64()] = true
	}
	if len(seen) < 16 {
		t.Errorf("16 draws from crypto/rand produced only %d distinct values", len(seen))
	}
}

func TestSourceFor(t *testing.T) {
	if _, ok := SourceFor(0).(CryptoSource); !ok {
		t.Errorf("SourceFor(0) is %T, want CryptoSource", SourceFor(0))
	}
	a, b := SourceFor(5), SourceFor(5)
	for i := 0; i < 4; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: seeded sources diverged: %d != %d", i, x, y)
		}
	}
}
