package symbolic

import (
	"math/big"
	"strconv"
	"strings"
)

// polynomial holds exact rational coefficients; coeffs[i] multiplies x^i.
// The slice never ends in a zero, so the zero polynomial is empty.
type polynomial struct {
	coeffs []*big.Rat
}

func newPolynomial(coeffs []*big.Rat) polynomial {
	end := len(coeffs)
	for end > 0 && coeffs[end-1].Sign() == 0 {
		end--
	}
	return polynomial{coeffs: coeffs[:end]}
}

func constPoly(v *big.Rat) polynomial {
	return newPolynomial([]*big.Rat{new(big.Rat).Set(v)})
}

func monomial(coef *big.Rat, deg int) polynomial {
	coeffs := make([]*big.Rat, deg+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	coeffs[deg].Set(coef)
	return newPolynomial(coeffs)
}

// degree is -1 for the zero polynomial.
func (p polynomial) degree() int {
	return len(p.coeffs) - 1
}

func (p polynomial) isZero() bool {
	return len(p.coeffs) == 0
}

func (p polynomial) coeff(i int) *big.Rat {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.coeffs[i])
}

func (p polynomial) add(q polynomial) polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	coeffs := make([]*big.Rat, n)
	for i := range coeffs {
		coeffs[i] = new(big.Rat).Add(p.coeff(i), q.coeff(i))
	}
	return newPolynomial(coeffs)
}

func (p polynomial) sub(q polynomial) polynomial {
	return p.add(q.neg())
}

func (p polynomial) neg() polynomial {
	return p.scale(big.NewRat(-1, 1))
}

func (p polynomial) scale(k *big.Rat) polynomial {
	coeffs := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = new(big.Rat).Mul(c, k)
	}
	return newPolynomial(coeffs)
}

func (p polynomial) mul(q polynomial) polynomial {
	if p.isZero() || q.isZero() {
		return polynomial{}
	}
	coeffs := make([]*big.Rat, len(p.coeffs)+len(q.coeffs)-1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	term := new(big.Rat)
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			coeffs[i+j].Add(coeffs[i+j], term.Mul(a, b))
		}
	}
	return newPolynomial(coeffs)
}

func (p polynomial) pow(n int) polynomial {
	result := constPoly(big.NewRat(1, 1))
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.mul(base)
		}
		base = base.mul(base)
		n >>= 1
	}
	return result
}

func (p polynomial) derivative() polynomial {
	if p.degree() < 1 {
		return polynomial{}
	}
	coeffs := make([]*big.Rat, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		coeffs[i-1] = new(big.Rat).Mul(p.coeffs[i], big.NewRat(int64(i), 1))
	}
	return newPolynomial(coeffs)
}

// String prints descending powers: 2*x**2 - x/2 + 3.
func (p polynomial) String() string {
	if p.isZero() {
		return "0"
	}

	terms := make([]signedTerm, 0, len(p.coeffs))
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, signedTerm{
			negative: c.Sign() < 0,
			text:     formatTerm(new(big.Rat).Abs(c), powerOfX(i)),
		})
	}
	return joinTerms(terms)
}

func powerOfX(deg int) string {
	switch deg {
	case 0:
		return ""
	case 1:
		return variableName
	default:
		return variableName + "**" + strconv.Itoa(deg)
	}
}

type signedTerm struct {
	negative bool
	text     string
}

func joinTerms(terms []signedTerm) string {
	if len(terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range terms {
		switch {
		case i == 0 && t.negative:
			sb.WriteString("-")
		case i > 0 && t.negative:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// formatTerm renders a positive coefficient times body the way a CAS would:
// 3*x, x/2, 3*x/2, or just the number when body is empty.
func formatTerm(coef *big.Rat, body string) string {
	if body == "" {
		return coef.RatString()
	}
	text := body
	if num := coef.Num(); !isOne(num) {
		text = num.String() + "*" + body
	}
	if den := coef.Denom(); !isOne(den) {
		text += "/" + den.String()
	}
	return text
}

func isOne(n *big.Int) bool {
	return n.IsInt64() && n.Int64() == 1
}

func (p polynomial) maxBits() int {
	bits := 0
	for _, c := range p.coeffs {
		bits = max(bits, c.Num().BitLen(), c.Denom().BitLen())
	}
	return bits
}

// divmod returns the quotient and remainder of p divided by d. d must not
// be zero.
func (p polynomial) divmod(d polynomial) (polynomial, polynomial) {
	if p.degree() < d.degree() {
		return polynomial{}, p
	}

	rem := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		rem[i] = new(big.Rat).Set(c)
	}
	quo := make([]*big.Rat, p.degree()-d.degree()+1)
	for i := range quo {
		quo[i] = new(big.Rat)
	}

	lead := d.coeffs[d.degree()]
	term := new(big.Rat)
	for i := p.degree(); i >= d.degree(); i-- {
		if rem[i].Sign() == 0 {
			continue
		}
		c := new(big.Rat).Quo(rem[i], lead)
		quo[i-d.degree()] = c
		for j, dc := range d.coeffs {
			k := i - d.degree() + j
			rem[k].Sub(rem[k], term.Mul(c, dc))
		}
	}
	return newPolynomial(quo), newPolynomial(rem)
}

func (p polynomial) monic() polynomial {
	if p.isZero() {
		return p
	}
	return p.scale(new(big.Rat).Inv(p.coeffs[p.degree()]))
}

// evalRat evaluates p exactly at v.
func (p polynomial) evalRat(v *big.Rat) *big.Rat {
	result := new(big.Rat)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result.Mul(result, v)
		result.Add(result, p.coeffs[i])
	}
	return result
}

// squareFree divides out repeated factors, leaving every root of p with
// multiplicity one.
func (p polynomial) squareFree() polynomial {
	d := p.derivative()
	if d.isZero() {
		return p
	}
	g := gcdPoly(p, d)
	if g.degree() < 1 {
		return p
	}
	q, _ := p.divmod(g)
	return q
}

// integerCoeffs scales p by the lcm of its denominators.
func (p polynomial) integerCoeffs() []*big.Int {
	lcm := big.NewInt(1)
	g := new(big.Int)
	for _, c := range p.coeffs {
		den := c.Denom()
		g.GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, g))
	}

	ints := make([]*big.Int, len(p.coeffs))
	for i, c := range p.coeffs {
		v := new(big.Int).Mul(c.Num(), lcm)
		ints[i] = v.Quo(v, c.Denom())
	}
	return ints
}

func gcdPoly(a, b polynomial) polynomial {
	for !b.isZero() {
		_, r := a.divmod(b)
		a, b = b, r
	}
	return a.monic()
}
