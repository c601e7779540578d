package symbolic

import (
	"errors"
	"math"
	"math/big"
	"math/cmplx"
	"sort"

	"math-agent/internal/domain/entity"

	"gonum.org/v1/gonum/mat"
)

const (
	// trial division bound when pulling square factors out of a radicand
	maxTrialFactor = 1_000_000
	rootTolerance  = 1e-9

	// rational root candidates are only tried while both end coefficients
	// are small enough to factor by trial division
	maxCandidateBits = 40
	maxCandidates    = 10_000
)

var errEigenFailed = errors.New("eigenvalue decomposition did not converge")

// roots returns the distinct roots of p in ascending order (real part, then
// imaginary part). Repeated factors are divided out first and rational roots
// are found exactly. What is left is solved exactly up to degree two and by
// the eigenvalues of the companion matrix above that.
func (p polynomial) roots() ([]entity.Root, error) {
	result := []entity.Root{}
	if p.degree() <= 0 {
		return result, nil
	}

	// x = 0 is a root of multiplicity k
	k := 0
	for p.coeffs[k].Sign() == 0 {
		k++
	}
	if k > 0 {
		result = append(result, entity.Root{Exact: "0"})
		p = newPolynomial(p.coeffs[k:])
	}

	p = p.squareFree()
	for _, r := range p.rationalRoots() {
		result = append(result, rationalRoot(r))
		p, _ = p.divmod(newPolynomial([]*big.Rat{new(big.Rat).Neg(r), big.NewRat(1, 1)}))
	}

	switch p.degree() {
	case 0:
	case 1:
		result = append(result, linearRoot(p))
	case 2:
		result = append(result, quadraticRoots(p)...)
	default:
		numeric, err := companionRoots(p)
		if err != nil {
			return nil, err
		}
		result = append(result, numeric...)
	}

	sortRoots(result)
	return result, nil
}

func linearRoot(p polynomial) entity.Root {
	v := new(big.Rat).Quo(p.coeff(0), p.coeff(1))
	return rationalRoot(v.Neg(v))
}

func rationalRoot(v *big.Rat) entity.Root {
	f, _ := v.Float64()
	return entity.Root{Real: f, Exact: v.RatString()}
}

// quadraticRoots applies (-b ± sqrt(b² - 4ac)) / 2a with exact arithmetic
// and simplifies the radical.
func quadraticRoots(p polynomial) []entity.Root {
	a, b, c := p.coeff(2), p.coeff(1), p.coeff(0)

	twoA := new(big.Rat).Mul(a, big.NewRat(2, 1))
	center := new(big.Rat).Quo(new(big.Rat).Neg(b), twoA)

	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))

	if disc.Sign() == 0 {
		return []entity.Root{rationalRoot(center)}
	}

	imaginary := disc.Sign() < 0
	absDisc := new(big.Rat).Abs(disc)

	// sqrt(n/d) = sqrt(n*d)/d = outside*sqrt(radicand)/d
	radicandInt := new(big.Int).Mul(absDisc.Num(), absDisc.Denom())
	outside, radicand := splitSquareFactor(radicandInt)

	coef := new(big.Rat).SetFrac(outside, absDisc.Denom())
	coef.Quo(coef, new(big.Rat).Abs(twoA))

	if !imaginary && isOne(radicand) {
		lo := new(big.Rat).Sub(center, coef)
		hi := new(big.Rat).Add(center, coef)
		return []entity.Root{rationalRoot(lo), rationalRoot(hi)}
	}

	body := ""
	if !isOne(radicand) {
		body = "sqrt(" + radicand.String() + ")"
	}
	if imaginary {
		if body == "" {
			body = "I"
		} else {
			body += "*I"
		}
	}

	centerF, _ := center.Float64()
	coefF, _ := coef.Float64()
	radF, _ := new(big.Float).SetInt(radicand).Float64()
	offset := coefF * math.Sqrt(radF)

	radical := formatTerm(coef, body)
	roots := make([]entity.Root, 0, 2)
	for _, negative := range []bool{true, false} {
		terms := make([]signedTerm, 0, 2)
		if center.Sign() != 0 {
			terms = append(terms, signedTerm{negative: center.Sign() < 0, text: new(big.Rat).Abs(center).RatString()})
		}
		terms = append(terms, signedTerm{negative: negative, text: radical})

		sign := 1.0
		if negative {
			sign = -1.0
		}
		root := entity.Root{Real: centerF, Exact: joinTerms(terms)}
		if imaginary {
			root.Imag = sign * offset
		} else {
			root.Real += sign * offset
		}
		roots = append(roots, root)
	}
	return roots
}

// splitSquareFactor writes n as outside² * radicand. Factors above
// maxTrialFactor are left inside the radical.
func splitSquareFactor(n *big.Int) (outside, radicand *big.Int) {
	outside = big.NewInt(1)
	radicand = new(big.Int).Set(n)

	if root, ok := intSqrt(radicand); ok {
		return root, big.NewInt(1)
	}

	square := new(big.Int)
	rem := new(big.Int)
	for f := int64(2); f <= maxTrialFactor; f++ {
		square.SetInt64(f * f)
		if square.Cmp(radicand) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(radicand, square, rem)
			if r.Sign() != 0 {
				break
			}
			radicand = q
			outside.Mul(outside, big.NewInt(f))
		}
	}
	return outside, radicand
}

// companionRoots finds the roots of p numerically as eigenvalues of its
// Frobenius companion matrix.
func companionRoots(p polynomial) ([]entity.Root, error) {
	n := p.degree()
	lead, _ := p.coeff(n).Float64()

	companion := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}
	for i := 0; i < n; i++ {
		ai, _ := p.coeff(i).Float64()
		companion.Set(i, n-1, -ai/lead)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil, errEigenFailed
	}

	roots := make([]entity.Root, 0, n)
	for _, v := range eig.Values(nil) {
		root := entity.Root{Real: snap(real(v)), Imag: snap(imag(v))}
		scale := math.Max(1, cmplx.Abs(v))
		if math.Abs(root.Imag) < rootTolerance*scale {
			root.Imag = 0
		}
		if !containsRoot(roots, root) {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

// snap rounds values that are within tolerance of an integer.
func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < rootTolerance {
		return r
	}
	return v
}

func containsRoot(roots []entity.Root, candidate entity.Root) bool {
	for _, r := range roots {
		if math.Abs(r.Real-candidate.Real) < 1e-7 && math.Abs(r.Imag-candidate.Imag) < 1e-7 {
			return true
		}
	}
	return false
}

func sortRoots(roots []entity.Root) {
	sort.SliceStable(roots, func(i, j int) bool {
		if roots[i].Real != roots[j].Real {
			return roots[i].Real < roots[j].Real
		}
		return roots[i].Imag < roots[j].Imag
	})
}

// rationalRoots returns the rational roots of a square-free p with a
// non-zero constant term, using the rational root theorem.
func (p polynomial) rationalRoots() []*big.Rat {
	if p.degree() < 3 {
		return nil
	}

	ints := p.integerCoeffs()
	nums, ok := divisors(ints[0])
	if !ok {
		return nil
	}
	dens, ok := divisors(ints[len(ints)-1])
	if !ok || len(nums)*len(dens) > maxCandidates {
		return nil
	}

	var found []*big.Rat
	seen := map[string]bool{}
	for _, n := range nums {
		for _, d := range dens {
			for _, sign := range []int64{1, -1} {
				candidate := new(big.Rat).SetFrac(new(big.Int).Mul(n, big.NewInt(sign)), d)
				key := candidate.RatString()
				if seen[key] {
					continue
				}
				seen[key] = true
				if p.evalRat(candidate).Sign() == 0 {
					found = append(found, candidate)
				}
			}
		}
	}
	return found
}

// divisors lists the positive divisors of n, or false when |n| is too large
// to factor by trial division.
func divisors(n *big.Int) ([]*big.Int, bool) {
	abs := new(big.Int).Abs(n)
	if abs.Sign() == 0 || abs.BitLen() > maxCandidateBits {
		return nil, false
	}

	v := abs.Int64()
	var result []*big.Int
	for f := int64(1); f*f <= v; f++ {
		if v%f != 0 {
			continue
		}
		result = append(result, big.NewInt(f))
		if g := v / f; g != f {
			result = append(result, big.NewInt(g))
		}
	}
	return result, true
}
