// Package result holds the outcome of running a circuit: which bit-strings
// were observed, and how often.
package result

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNotSingle is returned by Single when the counts are not those of exactly
// one shot.
var ErrNotSingle = errors.New("counts do not hold exactly one shot")

// An Entry pairs an observed bit-string with the number of shots that produced
// it. Rune i of Bits is classical bit i.
type Entry struct {
	Bits  string
	Count int
}

// Counts is an ordered sequence of entries, one per distinct bit-string, in
// the order the bit-strings were first observed.
type Counts struct {
	entries []Entry
}

// Add records n more observations of bits.
func (c *Counts) Add(bits string, n int) {
	for i := range c.entries {
		if c.entries[i].Bits == bits {
			c.entries[i].Count += n
			return
		}
	}
	c.entries = append(c.entries, Entry{Bits: bits, Count: n})
}

// Entries returns a copy of the entries in c.
func (c Counts) Entries() []Entry {
	r := make([]Entry, len(c.entries))
	copy(r, c.entries)
	return r
}

// Len returns the number of distinct bit-strings in c.
func (c Counts) Len() int {
	return len(c.entries)
}

// Shots returns the total number of observations in c.
func (c Counts) Shots() int {
	var sum int
	for _, e := range c.entries {
		sum += e.Count
	}
	return sum
}

// Get returns the count for bits, and whether bits was observed at all.
func (c Counts) Get(bits string) (int, bool) {
	for _, e := range c.entries {
		if e.Bits == bits {
			return e.Count, true
		}
	}
	return 0, false
}

// Single returns the only bit-string of a one-shot run.
func (c Counts) Single() (string, error) {
	if len(c.entries) != 1 || c.entries[0].Count != 1 {
		return "", errors.Wrapf(ErrNotSingle, "%d entries over %d shots", len(c.entries), c.Shots())
	}
	return c.entries[0].Bits, nil
}

// ToProto converts c into a Struct mapping each bit-string to its count.
func (c Counts) ToProto() *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(c.entries))}
	for _, e := range c.entries {
		s.Fields[e.Bits] = structpb.NewNumberValue(float64(e.Count))
	}
	return s
}

// FromProto converts a Struct produced by ToProto back into Counts. Entries
// are ordered by bit-string, since a Struct does not preserve order.
func FromProto(s *structpb.Struct) (Counts, error) {
	keys := make([]string, 0, len(s.GetFields()))
	for k := range s.GetFields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var c Counts
	for _, k := range keys {
		v, ok := s.GetFields()[k].GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return Counts{}, errors.Errorf("count for %q is not a number", k)
		}
		n := v.NumberValue
		if n < 0 || n != math.Trunc(n) {
			return Counts{}, errors.Errorf("count for %q is not a non-negative integer: %v", k, n)
		}
		c.Add(k, int(n))
	}
	return c, nil
}

// MarshalJSON renders c as a JSON object from bit-string to count.
func (c Counts) MarshalJSON() ([]byte, error) {
	return protojson.Marshal(c.ToProto())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Counts) UnmarshalJSON(data []byte) error {
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return errors.Wrap(err, "decoding counts")
	}
	r, err := FromProto(s)
	if err != nil {
		return err
	}
	*c = r
	return nil
}

func (c Counts) String() string {
	b, err := c.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}
