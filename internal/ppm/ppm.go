// Package ppm estimates compressed sizes with a prediction-by-partial-matching
// model.
//
// No bits are emitted: CodeLength sums the ideal arithmetic-coding cost of
// each symbol under an adaptive order-k model with method C escapes and an
// order -1 uniform fallback over bytes. The estimate is what a PPM coder
// would approach, which is all a compression distance needs.
package ppm

import "math"

// DefaultOrder is the context length used by the ppm distance.
const DefaultOrder = 2

// uniformBits is the cost of a byte under the order -1 model.
const uniformBits = 8

type symbolCount struct {
	sym   byte
	count int
}

// context holds the symbol statistics seen after one context string.
// Contexts are small, so a linear scan beats a map.
type context struct {
	symbols []symbolCount
	total   int
}

func (c *context) count(sym byte) int {
	for _, s := range c.symbols {
		if s.sym == sym {
			return s.count
		}
	}
	return 0
}

func (c *context) add(sym byte) {
	c.total++
	for i := range c.symbols {
		if c.symbols[i].sym == sym {
			c.symbols[i].count++
			return
		}
	}
	c.symbols = append(c.symbols, symbolCount{sym: sym, count: 1})
}

// CodeLength returns the estimated size of data in bits. Negative orders are
// treated as order 0.
func CodeLength(data []byte, order int) float64 {
	if order < 0 {
		order = 0
	}

	contexts := make(map[string]*context)
	bits := 0.0

	for i, sym := range data {
		hi := min(order, i)

		coded := false
		for k := hi; k >= 0; k-- {
			c := contexts[string(data[i-k:i])]
			if c == nil {
				continue
			}
			n := float64(c.total)
			d := float64(len(c.symbols))
			if cnt := c.count(sym); cnt > 0 {
				bits -= math.Log2(float64(cnt) / (n + d))
				coded = true
				break
			}
			// Escape to the next shorter context.
			bits -= math.Log2(d / (n + d))
		}
		if !coded {
			bits += uniformBits
		}

		for k := 0; k <= hi; k++ {
			key := string(data[i-k : i])
			c := contexts[key]
			if c == nil {
				c = &context{}
				contexts[key] = c
			}
			c.add(sym)
		}
	}

	return bits
}
