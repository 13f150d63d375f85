package ec2m

import (
	"fmt"
	"runtime"
)

// Defaults for the tunable algorithm choices. They were measured on one
// machine; cmd/ec2mtune re-derives the threshold for another.
const (
	DefaultWindow            = 4
	DefaultMultiExpThreshold = 60
)

type config struct {
	window          int
	threshold       int
	koblitzFallback bool
	tasks           int
}

func defaultConfig() config {
	return config{
		window:          DefaultWindow,
		threshold:       DefaultMultiExpThreshold,
		koblitzFallback: true,
		tasks:           runtime.NumCPU(),
	}
}

func (c config) validate() error {
	if c.window < 1 || c.window > 8 {
		return fmt.Errorf("window must be between 1 and 8, got %d", c.window)
	}
	if c.threshold < 0 {
		return fmt.Errorf("negative multi-exponentiation threshold %d", c.threshold)
	}
	if c.tasks < 1 {
		return fmt.Errorf("multi-exponentiation needs at least one task, got %d", c.tasks)
	}
	return nil
}

// Option configures a [Group].
type Option func(*config)

// WithWindow sets the window width, in bits, of precomputed base tables.
func WithWindow(w int) Option {
	return func(c *config) { c.window = w }
}

// WithMultiExpThreshold sets the smallest number of bases for which
// SimultaneousMultiExponentiate uses the batched algorithm.
func WithMultiExpThreshold(n int) Option {
	return func(c *config) { c.threshold = n }
}

// WithKoblitzFallback controls whether Koblitz curves always use
// sequential multi-exponentiation. It is on by default.
func WithKoblitzFallback(on bool) Option {
	return func(c *config) { c.koblitzFallback = on }
}

// WithMultiExpTasks sets how many goroutines the batched
// multi-exponentiation uses.
func WithMultiExpTasks(n int) Option {
	return func(c *config) { c.tasks = n }
}
