package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/f3rmion/ucot/internal/log"
	"github.com/f3rmion/ucot/ot"
	"github.com/go-logr/logr"
)

// State is the position of a session in the transfer.
type State int32

const (
	// Idle is a new session with no secret.
	Idle State = iota
	// MessageSent means the first message exists but may not have left.
	MessageSent
	// AwaitingSenderReply means the first message was handed to the
	// transport.
	AwaitingSenderReply
	// Completed is final; the output was returned.
	Completed
	// Aborted is final; the secret was discarded.
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MessageSent:
		return "message sent"
	case AwaitingSenderReply:
		return "awaiting sender reply"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var (
	// ErrClosed is returned by every call on a completed or aborted session.
	ErrClosed = errors.New("session is closed")
	// ErrWrongState is returned when a step is called out of order.
	ErrWrongState = errors.New("operation not allowed in current session state")
)

// Channel carries protocol messages to and from the sender.
type Channel interface {
	Send(ctx context.Context, msg []byte) error
	Receive(ctx context.Context) ([]byte, error)
}

// Option configures a Receiver.
type Option func(*Receiver)

// WithLogger sets the logger. Without it the logger is taken from the
// context of each call.
func WithLogger(l logr.Logger) Option {
	return func(r *Receiver) {
		r.logger = &l
	}
}

// Receiver runs a single transfer. It is safe for concurrent use, but
// every step after the first on a closed session fails with ErrClosed.
type Receiver struct {
	mu     sync.Mutex
	ot     *ot.Receiver
	logger *logr.Logger
	state  atomic.Int32
	secret *ot.Secret
}

// New returns an idle session for r.
func New(r *ot.Receiver, opts ...Option) (*Receiver, error) {
	if r == nil {
		return nil, errors.New("nil receiver")
	}
	s := &Receiver{ot: r}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current state.
func (s *Receiver) State() State {
	return State(s.state.Load())
}

// Start samples the receiver secret for choice sigma and returns the
// encoded first message.
func (s *Receiver) Start(ctx context.Context, rng io.Reader, sigma byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(s.log(ctx), rng, sigma)
}

// Sent records that the first message has been delivered to the
// transport.
func (s *Receiver) Sent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(MessageSent); err != nil {
		return err
	}
	s.transition(s.log(ctx), AwaitingSenderReply)
	return nil
}

// Finish decodes the sender's reply, validates it and returns the chosen
// string. Any error ends the session in Aborted.
func (s *Receiver) Finish(ctx context.Context, reply []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(s.log(ctx), reply)
}

// Abort ends the session and drops the secret. Aborting a closed session
// is a no-op.
func (s *Receiver) Abort(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.State(); st == Completed || st == Aborted {
		return
	}
	s.dropSecret()
	s.transition(s.log(ctx), Aborted)
}

// Run performs the whole transfer over ch.
func (s *Receiver) Run(ctx context.Context, rng io.Reader, sigma byte, ch Channel) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.log(ctx)
	first, err := s.start(logger, rng, sigma)
	if err != nil {
		return nil, err
	}
	if err := ch.Send(ctx, first); err != nil {
		err = fmt.Errorf("failed to send receiver message: %w", err)
		s.fail(logger, err)
		return nil, err
	}
	s.transition(logger, AwaitingSenderReply)

	reply, err := ch.Receive(ctx)
	if err != nil {
		err = fmt.Errorf("failed to receive sender message: %w", err)
		s.fail(logger, err)
		return nil, err
	}
	return s.finish(logger, reply)
}

func (s *Receiver) start(logger logr.Logger, rng io.Reader, sigma byte) ([]byte, error) {
	if err := s.require(Idle); err != nil {
		return nil, err
	}
	// An invalid choice or a failing rng leaves the session idle.
	secret, msg, err := s.ot.Setup(rng, sigma)
	if err != nil {
		return nil, err
	}
	data, err := ot.MarshalReceiverMessage(s.ot.Group(), msg)
	if err != nil {
		s.fail(logger, err)
		return nil, err
	}
	s.secret = secret
	s.transition(logger, MessageSent)
	return data, nil
}

func (s *Receiver) finish(logger logr.Logger, reply []byte) ([]byte, error) {
	if err := s.require(MessageSent, AwaitingSenderReply); err != nil {
		return nil, err
	}
	msg, err := ot.UnmarshalSenderMessage(s.ot.Group(), reply)
	if err != nil {
		s.fail(logger, err)
		return nil, err
	}
	out, err := s.ot.Receive(s.secret, msg)
	if err != nil {
		s.fail(logger, err)
		return nil, err
	}
	s.secret = nil
	s.transition(logger, Completed)
	return out, nil
}

func (s *Receiver) require(allowed ...State) error {
	st := s.State()
	if st == Completed || st == Aborted {
		return ErrClosed
	}
	for _, a := range allowed {
		if st == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongState, st)
}

func (s *Receiver) fail(logger logr.Logger, err error) {
	var cheat *ot.CheatError
	if errors.As(err, &cheat) {
		logger.Info("aborting transfer, cheat attempt detected", "check", cheat.Check.String())
	} else {
		logger.Error(err, "aborting transfer")
	}
	s.dropSecret()
	s.transition(logger, Aborted)
}

// dropSecret clears the receiver randomness on every exit that does not
// pass through ot.Receiver.Receive.
func (s *Receiver) dropSecret() {
	s.secret.Discard()
	s.secret = nil
}

func (s *Receiver) transition(logger logr.Logger, to State) {
	from := State(s.state.Swap(int32(to)))
	logger.V(1).Info("session state changed", "from", from.String(), "to", to.String())
}

func (s *Receiver) log(ctx context.Context) logr.Logger {
	if s.logger != nil {
		return s.logger.WithName("session")
	}
	return log.FromContext(ctx, "session")
}
