package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/f3rmion/ucot/ec2m"
	"github.com/f3rmion/ucot/prg"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		samples []sample
		want    int
		ok      bool
	}{
		{"empty", nil, 0, false},
		{"never", []sample{{10, 1, 2}, {20, 2, 3}}, 0, false},
		{"always", []sample{{10, 3, 2}, {20, 6, 3}}, 10, true},
		{"crossover", []sample{{10, 1, 2}, {20, 3, 2}, {30, 5, 3}}, 20, true},
		{"noisy", []sample{{10, 3, 2}, {20, 2, 3}, {30, 5, 3}}, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := suggest(tt.samples)
			if got != tt.want || ok != tt.ok {
				t.Errorf("suggest() = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	seq, err := ec2m.New(ec2m.T11A, ec2m.WithMultiExpThreshold(1<<30))
	if err != nil {
		t.Fatal(err)
	}
	bat, err := ec2m.New(ec2m.T11A, ec2m.WithMultiExpThreshold(0))
	if err != nil {
		t.Fatal(err)
	}
	rng, err := newRand("")
	if err != nil {
		t.Fatal(err)
	}
	s, err := measure(rng, seq, bat, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.n != 8 || s.sequential <= 0 || s.batched <= 0 {
		t.Errorf("unexpected sample %+v", s)
	}
}

func TestNewRand(t *testing.T) {
	seed := strings.Repeat("07", prg.SeedSize)
	a, err := newRand(seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newRand(seed)
	if err != nil {
		t.Fatal(err)
	}
	x, y := make([]byte, 32), make([]byte, 32)
	a.Read(x)
	b.Read(y)
	if !bytes.Equal(x, y) {
		t.Error("same seed gave different streams")
	}

	for _, bad := range []string{"zz", "0102"} {
		if _, err := newRand(bad); err == nil {
			t.Errorf("seed %q accepted", bad)
		}
	}
}
