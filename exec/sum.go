package exec

import (
	"encoding/binary"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/csql-dev/csql/diag"
	"github.com/csql-dev/csql/expr"
	"github.com/csql-dev/csql/schema"
	"github.com/csql-dev/csql/sql"
	"github.com/csql-dev/csql/tuple"
	"github.com/csql-dev/csql/value"
)

// Sum is the blocking group-by aggregation operator of spec.md section
// 4.8. With no GroupBy expressions it performs global aggregation, one
// output tuple for the whole input; with GroupBy expressions it buckets
// input rows by their evaluated group key and emits one output tuple per
// bucket, in an unspecified order.
type Sum struct {
	child   Operator
	groupBy []sql.Expr
	sums    []sql.Expr
	inMap   *schema.Mapping
	outMap  *schema.Mapping

	buffered bool
	groups   []*sumGroup
	cursor   int

	// buckets indexes groups by a murmur3 hash of the group key's byte
	// form, the same New128().Write/Sum(nil) bucketing the rest of the
	// retrieval pack's hash index uses. A hash collision only means two
	// groups share a bucket; equality is still decided by comparing the
	// actual key values, so collisions never merge distinct groups.
	buckets map[uint64][]int
}

type sumGroup struct {
	key          []value.Value
	accumulators []int64
}

// NewSum validates every groupBy and sums expression against child's
// mapping at construction time, then builds the output mapping: group-by
// columns named Group (single key) or Group_0.. (multiple), followed by
// SUM_0.. for the SUM list, per spec.md section 4.8.
func NewSum(child Operator, groupBy []sql.Expr, sums []sql.Expr) (*Sum, error) {
	inMap := child.Mapping()
	for _, g := range groupBy {
		if err := expr.CheckColumns(g, inMap); err != nil {
			return nil, err
		}
	}
	for _, se := range sums {
		if err := expr.CheckColumns(se, inMap); err != nil {
			return nil, err
		}
	}

	outMap := schema.New()
	idx := 0
	for i := range groupBy {
		name := "Group"
		if len(groupBy) > 1 {
			name = "Group_" + itoa(i)
		}
		outMap = outMap.WithColumn(name, idx)
		idx++
	}
	for i := range sums {
		outMap = outMap.WithColumn("SUM_"+itoa(i), idx)
		idx++
	}

	return &Sum{
		child:   child,
		groupBy: groupBy,
		sums:    sums,
		inMap:   inMap,
		outMap:  outMap,
		buckets: make(map[uint64][]int),
	}, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (s *Sum) Mapping() *schema.Mapping { return s.outMap }

func hashKey(key []value.Value) uint64 {
	var b strings.Builder
	for _, v := range key {
		b.WriteString(v.Text())
		b.WriteByte(0x1f)
	}
	h := murmur3.New128()
	h.Write([]byte(b.String()))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

func keysEqual(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (s *Sum) aggregate() error {
	for {
		t, err := s.child.Next()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}

		var key []value.Value
		for _, g := range s.groupBy {
			v, err := expr.Eval(g, t, s.inMap)
			if err != nil {
				return err
			}
			key = append(key, v)
		}

		sumVals := make([]int64, len(s.sums))
		for i, se := range s.sums {
			v, err := expr.Eval(se, t, s.inMap)
			if err != nil {
				return err
			}
			n, ok := v.Int()
			if !ok {
				return diag.Errorf(diag.Type, "sum", "non-integer value passed to SUM")
			}
			sumVals[i] = n
		}

		gi := s.findOrCreateGroup(key)
		g := s.groups[gi]
		for i, n := range sumVals {
			g.accumulators[i] += n
		}
	}
	s.buffered = true
	return nil
}

func (s *Sum) findOrCreateGroup(key []value.Value) int {
	h := hashKey(key)
	for _, gi := range s.buckets[h] {
		if keysEqual(s.groups[gi].key, key) {
			return gi
		}
	}
	g := &sumGroup{key: key, accumulators: make([]int64, len(s.sums))}
	s.groups = append(s.groups, g)
	gi := len(s.groups) - 1
	s.buckets[h] = append(s.buckets[h], gi)
	return gi
}

func (s *Sum) Next() (*tuple.Tuple, error) {
	if !s.buffered {
		// Global aggregation with an empty input must still emit exactly
		// one tuple of zeroed accumulators, so seed a single group before
		// the first Next when there is no GroupBy (spec.md section 4.8).
		if len(s.groupBy) == 0 {
			s.findOrCreateGroup(nil)
		}
		if err := s.aggregate(); err != nil {
			return nil, err
		}
	}
	if s.cursor >= len(s.groups) {
		return nil, nil
	}
	g := s.groups[s.cursor]
	s.cursor++

	fields := make([]value.Value, 0, len(g.key)+len(g.accumulators))
	fields = append(fields, g.key...)
	for _, acc := range g.accumulators {
		fields = append(fields, value.FromInt(acc))
	}
	return &tuple.Tuple{Fields: fields}, nil
}

// Reset rewinds the cursor over the already-materialized group table
// without re-running aggregation (spec.md section 4.8).
func (s *Sum) Reset() error {
	s.cursor = 0
	return nil
}

func (s *Sum) Close() error { return s.child.Close() }
