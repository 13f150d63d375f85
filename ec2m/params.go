package ec2m

import (
	"errors"
	"fmt"
	"math/big"
)

// Params describes the curve y^2 + xy = x^3 + ax^2 + b over GF(2^M) and
// the prime-order subgroup used as the group.
type Params struct {
	// Name is a human readable identifier such as "K-163".
	Name string
	// M is the extension degree of the field.
	M int
	// Basis holds the middle exponents of the reduction polynomial: one
	// for the trinomial x^M + x^k1 + 1, three for the pentanomial
	// x^M + x^k1 + x^k2 + x^k3 + 1.
	Basis []int
	// A and B are the curve coefficients.
	A, B *big.Int
	// Gx and Gy are the affine coordinates of the generator.
	Gx, Gy *big.Int
	// Q is the prime order of the generator.
	Q *big.Int
	// Cofactor is the curve order divided by Q.
	Cofactor *big.Int
	// Koblitz marks an anomalous binary curve (a in {0,1}, b = 1).
	Koblitz bool
}

// Trinomial reports whether the reduction polynomial is a trinomial.
func (p Params) Trinomial() bool {
	return len(p.Basis) == 1
}

func (p Params) validate() error {
	if p.M < 2 {
		return fmt.Errorf("invalid field degree %d", p.M)
	}
	if len(p.Basis) != 1 && len(p.Basis) != 3 {
		return fmt.Errorf("basis needs 1 or 3 exponents, got %d", len(p.Basis))
	}
	for _, v := range []struct {
		name string
		x    *big.Int
	}{{"a", p.A}, {"b", p.B}, {"gx", p.Gx}, {"gy", p.Gy}, {"q", p.Q}, {"cofactor", p.Cofactor}} {
		if v.x == nil {
			return fmt.Errorf("missing curve parameter %s", v.name)
		}
	}
	if p.Cofactor.Sign() <= 0 {
		return errors.New("cofactor must be positive")
	}
	if !p.Q.ProbablyPrime(20) {
		return errors.New("subgroup order is not prime")
	}
	if p.Koblitz {
		one := big.NewInt(1)
		if p.B.Cmp(one) != 0 || p.A.Sign() < 0 || p.A.Cmp(one) > 0 {
			return errors.New("koblitz curve requires b = 1 and a in {0, 1}")
		}
	}
	return nil
}

// clone returns a deep copy so that callers cannot alter a group's
// parameters after construction.
func (p Params) clone() Params {
	c := p
	c.Basis = append([]int(nil), p.Basis...)
	for _, x := range []**big.Int{&c.A, &c.B, &c.Gx, &c.Gy, &c.Q, &c.Cofactor} {
		if *x != nil {
			*x = new(big.Int).Set(*x)
		}
	}
	return c
}

func hex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ec2m: bad constant " + s)
	}
	return v
}

// NIST binary curves from FIPS 186.
var (
	K163 = Params{
		Name:     "K-163",
		M:        163,
		Basis:    []int{7, 6, 3},
		A:        big.NewInt(1),
		B:        big.NewInt(1),
		Gx:       hex("02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8"),
		Gy:       hex("0289070FB05D38FF58321F2E800536D538CCDAA3D9"),
		Q:        hex("04000000000000000000020108A2E0CC0D99F8A5EF"),
		Cofactor: big.NewInt(2),
		Koblitz:  true,
	}
	B163 = Params{
		Name:     "B-163",
		M:        163,
		Basis:    []int{7, 6, 3},
		A:        big.NewInt(1),
		B:        hex("020A601907B8C953CA1481EB10512F78744A3205FD"),
		Gx:       hex("03F0EBA16286A2D57EA0991168D4994637E8343E36"),
		Gy:       hex("00D51FBC6C71A0094FA2CDD545B11C5C0C797324F1"),
		Q:        hex("040000000000000000000292FE77E70C12A4234C33"),
		Cofactor: big.NewInt(2),
	}
	K233 = Params{
		Name:     "K-233",
		M:        233,
		Basis:    []int{74},
		A:        big.NewInt(0),
		B:        big.NewInt(1),
		Gx:       hex("017232BA853A7E731AF129F22FF4149563A419C26BF50A4C9D6EEFAD6126"),
		Gy:       hex("01DB537DECE819B7F70F555A67C427A8CD9BF18AEB9B56E0C11056FAE6A3"),
		Q:        hex("8000000000000000000000000000069D5BB915BCD46EFB1AD5F173ABDF"),
		Cofactor: big.NewInt(4),
		Koblitz:  true,
	}
	B233 = Params{
		Name:     "B-233",
		M:        233,
		Basis:    []int{74},
		A:        big.NewInt(1),
		B:        hex("0066647EDE6C332C7F8C0923BB58213B333B20E9CE4281FE115F7D8F90AD"),
		Gx:       hex("00FAC9DFCBAC8313BB2139F1BB755FEF65BC391F8B36F8F8EB7371FD558B"),
		Gy:       hex("01006A08A41903350678E58528BEBF8A0BEFF867A7CA36716F7E01F81052"),
		Q:        hex("01000000000000000000000000000013E974E72F8A6922031D2603CFE0D7"),
		Cofactor: big.NewInt(2),
	}
	K283 = Params{
		Name:     "K-283",
		M:        283,
		Basis:    []int{12, 7, 5},
		A:        big.NewInt(0),
		B:        big.NewInt(1),
		Gx:       hex("0503213F78CA44883F1A3B8162F188E553CD265F23C1567A16876913B0C2AC2458492836"),
		Gy:       hex("01CCDA380F1C9E318D90F95D07E5426FE87E45C0E8184698E45962364E34116177DD2259"),
		Q:        hex("01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFE9AE2ED07577265DFF7F94451E061E163C61"),
		Cofactor: big.NewInt(4),
		Koblitz:  true,
	}
	B283 = Params{
		Name:     "B-283",
		M:        283,
		Basis:    []int{12, 7, 5},
		A:        big.NewInt(1),
		B:        hex("027B680AC8B8596DA5A4AF8A19A0303FCA97FD7645309FA2A581485AF6263E313B79A2F5"),
		Gx:       hex("05F939258DB7DD90E1934F8C70B0DFEC2EED25B8557EAC9C80E2E198F8CDBECD86B12053"),
		Gy:       hex("03676854FE24141CB98FE6D4B20D02B4516FF702350EDDB0826779C813F0DF45BE8112F4"),
		Q:        hex("03FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEF90399660FC938A90165B042A7CEFADB307"),
		Cofactor: big.NewInt(2),
	}
)

// Small curves over GF(2^11) with reduction polynomial x^11 + x^2 + 1.
// They offer no security and exist for tests and tuning runs.
var (
	T11A = Params{
		Name:     "T11-A",
		M:        11,
		Basis:    []int{2},
		A:        big.NewInt(1),
		B:        big.NewInt(0x16),
		Gx:       big.NewInt(0x17),
		Gy:       big.NewInt(0x525),
		Q:        big.NewInt(1009),
		Cofactor: big.NewInt(2),
	}
	T11B = Params{
		Name:     "T11-B",
		M:        11,
		Basis:    []int{2},
		A:        big.NewInt(0),
		B:        big.NewInt(0xf),
		Gx:       big.NewInt(0x47e),
		Gy:       big.NewInt(0x562),
		Q:        big.NewInt(521),
		Cofactor: big.NewInt(4),
	}
	T11K = Params{
		Name:     "T11-K",
		M:        11,
		Basis:    []int{2},
		A:        big.NewInt(1),
		B:        big.NewInt(1),
		Gx:       big.NewInt(0x742),
		Gy:       big.NewInt(0x52),
		Q:        big.NewInt(991),
		Cofactor: big.NewInt(2),
		Koblitz:  true,
	}
)

var named = map[string]Params{
	K163.Name: K163,
	B163.Name: B163,
	K233.Name: K233,
	B233.Name: B233,
	K283.Name: K283,
	B283.Name: B283,
	T11A.Name: T11A,
	T11B.Name: T11B,
	T11K.Name: T11K,
}

// ParamsByName returns the parameters of a named curve.
func ParamsByName(name string) (Params, bool) {
	p, ok := named[name]
	if !ok {
		return Params{}, false
	}
	return p.clone(), true
}

// Names lists the named curves.
func Names() []string {
	return []string{
		K163.Name, B163.Name, K233.Name, B233.Name, K283.Name, B283.Name,
		T11A.Name, T11B.Name, T11K.Name,
	}
}
