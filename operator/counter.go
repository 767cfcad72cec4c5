package operator

// Counter wraps an Operator and counts how many forward and adjoint
// products have been applied through it. The pursuit engine wraps every
// operator it is given so each run can report its product counts.
//
// Counter is not safe for concurrent use; each solver run owns its own.
type Counter struct {
	op               Operator
	forward, adjoint int
}

// Wrap returns a counting view over op with both counters at zero.
func Wrap(op Operator) *Counter {
	if op == nil {
		panic("operator: Wrap requires a non-nil operator")
	}

	return &Counter{op: op}
}

// Dims returns the shape of the wrapped operator.
func (c *Counter) Dims() (rows, cols int) { return c.op.Dims() }

// MatVec applies the forward product and increments the forward counter.
func (c *Counter) MatVec(dst, src []float64) {
	c.op.MatVec(dst, src)
	c.forward++
}

// MatTransVec applies the adjoint product and increments the adjoint counter.
func (c *Counter) MatTransVec(dst, src []float64) {
	c.op.MatTransVec(dst, src)
	c.adjoint++
}

// Forward reports the number of A·v products applied so far.
func (c *Counter) Forward() int { return c.forward }

// Adjoint reports the number of Aᵀ·v products applied so far.
func (c *Counter) Adjoint() int { return c.adjoint }
