package symbolic

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"math/cmplx"
)

const (
	maxExponent = 64
	maxDegree   = 256
	// maxCoefficientBits bounds the numerator and denominator of every
	// exact coefficient.
	maxCoefficientBits = 4096
	// whole exponents up to 2^53 go through repeated squaring
	maxIntPowExponent = 1 << 53
)

var (
	errNotPolynomial  = errors.New("not a polynomial in x")
	errDivisionByZero = errors.New("division by zero")
	errTooLarge       = fmt.Errorf("coefficients exceed %d bits", maxCoefficientBits)
)

// node is a parsed expression in x. Evaluation is done in complex128 so a
// non-real intermediate (sqrt of a negative) surfaces instead of NaN.
type node interface {
	eval(x complex128) complex128
	polynomial() (polynomial, error)
}

type constant struct {
	value *big.Rat
}

func (c *constant) eval(complex128) complex128 {
	f, _ := c.value.Float64()
	return complex(f, 0)
}

func (c *constant) polynomial() (polynomial, error) {
	return constPoly(c.value), nil
}

type variable struct{}

func (variable) eval(x complex128) complex128 {
	return x
}

func (variable) polynomial() (polynomial, error) {
	return monomial(big.NewRat(1, 1), 1), nil
}

type negate struct {
	arg node
}

func (n *negate) eval(x complex128) complex128 {
	return -n.arg.eval(x)
}

func (n *negate) polynomial() (polynomial, error) {
	p, err := n.arg.polynomial()
	if err != nil {
		return polynomial{}, err
	}
	return p.neg(), nil
}

type binary struct {
	op    byte
	left  node
	right node
}

func (b *binary) eval(x complex128) complex128 {
	l, r := b.left.eval(x), b.right.eval(x)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		if r == 0 {
			return cmplx.Inf()
		}
		return l / r
	}
	return cmplx.NaN()
}

func (b *binary) polynomial() (polynomial, error) {
	l, err := b.left.polynomial()
	if err != nil {
		return polynomial{}, err
	}
	r, err := b.right.polynomial()
	if err != nil {
		return polynomial{}, err
	}

	switch b.op {
	case '+':
		return l.add(r), nil
	case '-':
		return l.sub(r), nil
	case '*':
		if l.degree()+r.degree() > maxDegree {
			return polynomial{}, fmt.Errorf("degree exceeds %d", maxDegree)
		}
		if l.maxBits()+r.maxBits()+bits.Len(uint(len(r.coeffs))) > maxCoefficientBits {
			return polynomial{}, errTooLarge
		}
		return l.mul(r), nil
	case '/':
		if r.isZero() {
			return polynomial{}, errDivisionByZero
		}
		if r.degree() > 0 {
			return polynomial{}, fmt.Errorf("%w: division by an expression in x", errNotPolynomial)
		}
		return l.scale(new(big.Rat).Inv(r.coeff(0))), nil
	}
	return polynomial{}, fmt.Errorf("unsupported operator %q", b.op)
}

type power struct {
	base node
	exp  node
}

func (p *power) eval(x complex128) complex128 {
	base, exp := p.base.eval(x), p.exp.eval(x)
	if e := real(exp); imag(exp) == 0 && e == math.Trunc(e) {
		if math.Abs(e) <= maxIntPowExponent {
			return intPow(base, int64(e))
		}
		if imag(base) == 0 {
			return complex(math.Pow(real(base), e), 0)
		}
	}
	return cmplx.Pow(base, exp)
}

func (p *power) polynomial() (polynomial, error) {
	exp, err := p.exp.polynomial()
	if err != nil {
		return polynomial{}, err
	}
	if exp.degree() > 0 {
		return polynomial{}, fmt.Errorf("%w: exponent depends on x", errNotPolynomial)
	}

	n := exp.coeff(0)
	if !n.IsInt() || n.Sign() < 0 || n.Num().Cmp(big.NewInt(maxExponent)) > 0 {
		return polynomial{}, fmt.Errorf("%w: exponent %s must be a whole number between 0 and %d",
			errNotPolynomial, n.RatString(), maxExponent)
	}

	base, err := p.base.polynomial()
	if err != nil {
		return polynomial{}, err
	}
	k := int(n.Num().Int64())
	if base.degree()*k > maxDegree {
		return polynomial{}, fmt.Errorf("degree exceeds %d", maxDegree)
	}
	if (base.maxBits()+bits.Len(uint(len(base.coeffs))))*k > maxCoefficientBits {
		return polynomial{}, errTooLarge
	}
	return base.pow(k), nil
}

type sqrtCall struct {
	arg node
}

func (s *sqrtCall) eval(x complex128) complex128 {
	return cmplx.Sqrt(s.arg.eval(x))
}

// polynomial only succeeds for the square root of a perfect-square constant.
func (s *sqrtCall) polynomial() (polynomial, error) {
	arg, err := s.arg.polynomial()
	if err != nil {
		return polynomial{}, err
	}
	if arg.degree() <= 0 {
		if root, ok := ratSqrt(arg.coeff(0)); ok {
			return constPoly(root), nil
		}
	}
	return polynomial{}, fmt.Errorf("%w: sqrt of a non-square", errNotPolynomial)
}

func intPow(base complex128, n int64) complex128 {
	if n < 0 {
		if base == 0 {
			return cmplx.Inf()
		}
		return 1 / intPow(base, -n)
	}
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	return result
}

// ratSqrt returns the exact square root of a non-negative rational when
// both numerator and denominator are perfect squares.
func ratSqrt(v *big.Rat) (*big.Rat, bool) {
	if v.Sign() < 0 {
		return nil, false
	}
	num, ok := intSqrt(v.Num())
	if !ok {
		return nil, false
	}
	den, ok := intSqrt(v.Denom())
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

func intSqrt(n *big.Int) (*big.Int, bool) {
	root := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(root, root).Cmp(n) != 0 {
		return nil, false
	}
	return root, true
}
