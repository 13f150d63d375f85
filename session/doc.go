// Package session drives one oblivious transfer from the receiver's side.
// It wraps the primitives in the [ot] package with a state machine that
// owns the receiver secret, moves the protocol messages over a [Channel]
// and guarantees that a secret is never used for more than one run.
//
// # Running a transfer
//
// A Receiver is created per transfer from a long-lived [ot.Receiver]:
//
//	r, err := ot.NewReceiver(g, crs, nil)
//	if err != nil {
//		return err
//	}
//
//	sess, err := session.New(r, session.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	// Sends the first message, waits for the reply and decrypts.
//	out, err := sess.Run(ctx, rand.Reader, sigma, ch)
//
// The same steps are available one at a time through Start, Sent and
// Finish for callers that move the bytes themselves.
//
// # States
//
// A session starts Idle. Start produces the first message and moves it to
// MessageSent; Sent records that the message left and moves it to
// AwaitingSenderReply. Finish ends in Completed or Aborted. Both end
// states are final: a session is never retried, and a detected cheat
// attempt aborts it.
//
// # Logging
//
// State changes are logged at V(1). Aborts are logged at info level with
// the name of the failed check. The choice bit, the receiver randomness
// and the output never reach the logger.
package session
