package session

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/f3rmion/ucot/ec2m"
	"github.com/f3rmion/ucot/group"
	"github.com/f3rmion/ucot/internal/ottest"
	"github.com/f3rmion/ucot/ot"
	"github.com/f3rmion/ucot/prg"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipe is an in-memory channel whose far end is an honest sender. tamper,
// if set, edits each reply before it is encoded.
type pipe struct {
	g      group.Group
	sender *ottest.Sender
	x0, x1 []byte
	tamper func(*ot.SenderMessage)

	sendErr error
	reply   chan []byte
}

func (p *pipe) Send(ctx context.Context, msg []byte) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	m, err := ot.UnmarshalReceiverMessage(p.g, msg)
	if err != nil {
		return err
	}
	resp, err := p.sender.Respond(m, p.x0, p.x1)
	if err != nil {
		return err
	}
	if p.tamper != nil {
		p.tamper(resp)
	}
	data, err := ot.MarshalSenderMessage(p.g, resp)
	if err != nil {
		return err
	}
	p.reply = make(chan []byte, 1)
	p.reply <- data
	return nil
}

func (p *pipe) Receive(ctx context.Context) ([]byte, error) {
	select {
	case data := <-p.reply:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type env struct {
	g    *ec2m.Group
	ot   *ot.Receiver
	rng  *rand.Rand
	pipe *pipe
}

func newEnv(t *testing.T) *env {
	t.Helper()
	g, err := ec2m.New(ec2m.T11A)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(11))
	crs, err := ottest.NewCRS(g, rng)
	require.NoError(t, err)
	r, err := ot.NewReceiver(g, crs, nil)
	require.NoError(t, err)
	return &env{
		g:   g,
		ot:  r,
		rng: rng,
		pipe: &pipe{
			g:      g,
			sender: &ottest.Sender{Group: g, CRS: crs, Rand: rng},
			x0:     []byte("zero"),
			x1:     []byte("one!"),
		},
	}
}

// captureLogger records every log line at verbosity up to 1.
func captureLogger() (logr.Logger, func() []string) {
	var mu sync.Mutex
	var lines []string
	l := funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})
	return l, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

func TestRun(t *testing.T) {
	e := newEnv(t)
	for sigma := byte(0); sigma < 2; sigma++ {
		logger, lines := captureLogger()
		s, err := New(e.ot, WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, Idle, s.State())

		out, err := s.Run(context.Background(), e.rng, sigma, e.pipe)
		require.NoError(t, err)
		assert.Equal(t, [2][]byte{e.pipe.x0, e.pipe.x1}[sigma], out)
		assert.Equal(t, Completed, s.State())

		logged := strings.Join(lines(), "\n")
		for _, st := range []State{MessageSent, AwaitingSenderReply, Completed} {
			assert.Contains(t, logged, st.String())
		}
		assert.NotContains(t, logged, string(out))

		_, err = s.Run(context.Background(), e.rng, sigma, e.pipe)
		assert.ErrorIs(t, err, ErrClosed)
	}
}

func TestStepwise(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s, err := New(e.ot)
	require.NoError(t, err)

	_, err = s.Finish(ctx, nil)
	assert.ErrorIs(t, err, ErrWrongState)
	assert.ErrorIs(t, s.Sent(ctx), ErrWrongState)

	_, err = s.Start(ctx, e.rng, 2)
	assert.ErrorIs(t, err, ot.ErrInvalidChoice)
	assert.Equal(t, Idle, s.State())

	first, err := s.Start(ctx, e.rng, 1)
	require.NoError(t, err)
	assert.Equal(t, MessageSent, s.State())
	_, err = s.Start(ctx, e.rng, 1)
	assert.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, e.pipe.Send(ctx, first))
	require.NoError(t, s.Sent(ctx))
	assert.Equal(t, AwaitingSenderReply, s.State())

	reply, err := e.pipe.Receive(ctx)
	require.NoError(t, err)
	out, err := s.Finish(ctx, reply)
	require.NoError(t, err)
	assert.Equal(t, e.pipe.x1, out)

	_, err = s.Finish(ctx, reply)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestCheatAborts(t *testing.T) {
	e := newEnv(t)
	e.pipe.tamper = func(m *ot.SenderMessage) {
		m.C0 = append(m.C0, 0xff)
	}
	logger, lines := captureLogger()
	s, err := New(e.ot, WithLogger(logger))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), e.rng, 0, e.pipe)
	require.ErrorIs(t, err, ot.ErrCheatAttempt)
	assert.Equal(t, Aborted, s.State())

	logged := strings.Join(lines(), "\n")
	assert.Contains(t, logged, ot.CheckCiphertextLength.String())

	e.pipe.tamper = nil
	_, err = s.Start(context.Background(), e.rng, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMalformedReplyAborts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	s, err := New(e.ot)
	require.NoError(t, err)
	_, err = s.Start(ctx, e.rng, 0)
	require.NoError(t, err)

	secret := s.secret
	_, err = s.Finish(ctx, []byte{0xa0})
	assert.ErrorIs(t, err, ot.ErrMalformedMessage)
	assert.True(t, secret.Consumed(), "secret discarded on abort")
	assert.Nil(t, s.secret)
	assert.False(t, errors.Is(err, ot.ErrCheatAttempt))
	assert.Equal(t, Aborted, s.State())
}

func TestTransportFailures(t *testing.T) {
	t.Run("send", func(t *testing.T) {
		e := newEnv(t)
		e.pipe.sendErr = errors.New("connection reset")
		s, err := New(e.ot)
		require.NoError(t, err)
		_, err = s.Run(context.Background(), e.rng, 1, e.pipe)
		assert.ErrorIs(t, err, e.pipe.sendErr)
		assert.Equal(t, Aborted, s.State())
	})

	t.Run("receive timeout", func(t *testing.T) {
		e := newEnv(t)
		s, err := New(e.ot)
		require.NoError(t, err)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = s.Run(ctx, e.rng, 1, &silent{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, Aborted, s.State())
	})

	t.Run("abort", func(t *testing.T) {
		e := newEnv(t)
		s, err := New(e.ot)
		require.NoError(t, err)
		_, err = s.Start(context.Background(), e.rng, 1)
		require.NoError(t, err)
		secret := s.secret
		s.Abort(context.Background())
		assert.True(t, secret.Consumed(), "secret discarded on abort")
		assert.Nil(t, s.secret)
		assert.Equal(t, Aborted, s.State())
		s.Abort(context.Background())
		_, err = s.Run(context.Background(), e.rng, 1, e.pipe)
		assert.ErrorIs(t, err, ErrClosed)
	})
}

// silent accepts messages and never answers.
type silent struct{}

func (silent) Send(context.Context, []byte) error { return nil }

func (silent) Receive(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// TestConcurrentSessions runs a batch of transfers with choice bits drawn
// from a seeded PRG, one goroutine per session. The sessions have no
// logger, so they all share the fallback logger.
func TestConcurrentSessions(t *testing.T) {
	e := newEnv(t)
	seed := bytes.Repeat([]byte{9}, prg.SeedSize)
	p, err := prg.New(seed)
	require.NoError(t, err)

	const n = 16
	choices, err := prg.ChoiceBits(p, n)
	require.NoError(t, err)

	var wg sync.WaitGroup
	outs := make([][]byte, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		var sigma byte
		if choices.Test(uint(i)) {
			sigma = 1
		}
		rp, err := prg.NewRandom()
		require.NoError(t, err)
		// Each session gets its own sender randomness and pipe.
		pp := *e.pipe
		pp.sender = &ottest.Sender{Group: e.pipe.sender.Group, CRS: e.pipe.sender.CRS, Rand: rp}
		s, err := New(e.ot)
		require.NoError(t, err)

		wg.Add(1)
		go func(i int, sigma byte, ch *pipe) {
			defer wg.Done()
			rr, err := prg.NewRandom()
			if err != nil {
				errs[i] = err
				return
			}
			outs[i], errs[i] = s.Run(context.Background(), rr, sigma, ch)
		}(i, sigma, &pp)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		want := e.pipe.x0
		if choices.Test(uint(i)) {
			want = e.pipe.x1
		}
		assert.Equal(t, want, outs[i], "session %d", i)
	}
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
