// Command ec2mtune measures sequential and batched multi-exponentiation
// on a binary curve and suggests the batch threshold for this machine.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/f3rmion/ucot/ec2m"
	"github.com/f3rmion/ucot/group"
	"github.com/f3rmion/ucot/internal/log"
	"github.com/f3rmion/ucot/prg"
	"github.com/markkurossi/tabulate"
)

type sample struct {
	n          int
	sequential time.Duration
	batched    time.Duration
}

func main() {
	curve := flag.String("curve", ec2m.B233.Name, "curve name")
	maxN := flag.Int("max", 120, "largest number of bases")
	step := flag.Int("step", 10, "increment of the number of bases")
	reps := flag.Int("reps", 3, "repetitions per measurement")
	seed := flag.String("seed", "", "hex `seed` for reproducible inputs (random if empty)")
	verbose := flag.Int("v", 0, "log verbosity")
	flag.Parse()

	logger := log.GetLogger(*verbose)
	if *step <= 0 || *maxN <= 0 || *reps <= 0 {
		fmt.Fprintln(os.Stderr, "max, step and reps must be positive")
		os.Exit(2)
	}

	rng, err := newRand(*seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid seed: %v\n", err)
		os.Exit(2)
	}

	seq, err := ec2m.NewNamed(*curve, ec2m.WithMultiExpThreshold(1<<30))
	if err != nil {
		logger.Error(err, "failed to build curve", "curve", *curve)
		os.Exit(1)
	}
	bat, err := ec2m.NewNamed(*curve,
		ec2m.WithMultiExpThreshold(0), ec2m.WithKoblitzFallback(false))
	if err != nil {
		logger.Error(err, "failed to build curve", "curve", *curve)
		os.Exit(1)
	}

	var samples []sample
	for n := *step; n <= *maxN; n += *step {
		s, err := measure(rng, seq, bat, n, *reps)
		if err != nil {
			logger.Error(err, "measurement failed", "n", n)
			os.Exit(1)
		}
		logger.V(1).Info("measured", "n", n,
			"sequential", s.sequential, "batched", s.batched)
		samples = append(samples, s)
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("n").SetAlign(tabulate.MR)
	tab.Header("Sequential").SetAlign(tabulate.MR)
	tab.Header("Batched").SetAlign(tabulate.MR)
	tab.Header("Ratio").SetAlign(tabulate.MR)
	for _, s := range samples {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", s.n))
		row.Column(s.sequential.String())
		row.Column(s.batched.String())
		row.Column(fmt.Sprintf("%.2f",
			float64(s.batched)/float64(s.sequential)))
	}
	tab.Print(os.Stdout)

	fmt.Printf("curve %s (Koblitz %v), default threshold %d\n",
		seq.Name(), seq.Koblitz(), ec2m.DefaultMultiExpThreshold)
	if n, ok := suggest(samples); ok {
		fmt.Printf("suggested threshold: %d\n", n)
	} else {
		fmt.Println("batched path never wins up to the largest n; keep the sequential path")
	}
}

// newRand returns a PRG expanding the hex seed, or a randomly seeded one.
func newRand(seed string) (*prg.PRG, error) {
	if seed == "" {
		return prg.NewRandom()
	}
	b, err := hex.DecodeString(seed)
	if err != nil {
		return nil, err
	}
	return prg.New(b)
}

// measure times both groups on the same random input of n bases.
func measure(rng io.Reader, seq, bat *ec2m.Group, n, reps int) (sample, error) {
	s := sample{n: n}
	ks := make([]*big.Int, n)
	seqBases := make([]group.Element, n)
	batBases := make([]group.Element, n)
	for i := 0; i < n; i++ {
		e, err := seq.RandomScalar(rng)
		if err != nil {
			return s, err
		}
		if ks[i], err = seq.RandomScalar(rng); err != nil {
			return s, err
		}
		if seqBases[i], err = seq.Exponentiate(seq.Generator(), e); err != nil {
			return s, err
		}
		if batBases[i], err = bat.Exponentiate(bat.Generator(), e); err != nil {
			return s, err
		}
	}

	var err error
	if s.sequential, err = timeIt(seq, seqBases, ks, reps); err != nil {
		return s, err
	}
	if s.batched, err = timeIt(bat, batBases, ks, reps); err != nil {
		return s, err
	}
	return s, nil
}

func timeIt(g *ec2m.Group, bases []group.Element, ks []*big.Int, reps int) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < reps; i++ {
		if _, err := g.SimultaneousMultiExponentiate(bases, ks); err != nil {
			return 0, err
		}
	}
	return time.Since(start) / time.Duration(reps), nil
}

// suggest returns the smallest n from which the batched path is faster
// for every larger measured n.
func suggest(samples []sample) (int, bool) {
	best, ok := 0, false
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i].batched >= samples[i].sequential {
			break
		}
		best, ok = samples[i].n, true
	}
	return best, ok
}
