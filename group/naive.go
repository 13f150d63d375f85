package group

import "math/big"

// NaiveMultiExponentiate computes the product of bases[i]^ks[i] one
// exponentiation at a time. Realizations fall back to it when a batched
// algorithm does not pay off.
func NaiveMultiExponentiate(g Group, bases []Element, ks []*big.Int) (Element, error) {
	if len(bases) != len(ks) {
		return nil, ErrLengthMismatch
	}
	acc := g.Identity()
	for i, b := range bases {
		p, err := g.Exponentiate(b, ks[i])
		if err != nil {
			return nil, err
		}
		if acc, err = g.Multiply(acc, p); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
