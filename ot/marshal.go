package ot

import (
	"fmt"

	"github.com/f3rmion/ucot/group"
	"github.com/fxamacker/cbor/v2"
)

type receiverMessageWire struct {
	G *group.ElementData `cbor:"g"`
	H *group.ElementData `cbor:"h"`
}

type senderMessageWire struct {
	U0 *group.ElementData `cbor:"u0"`
	U1 *group.ElementData `cbor:"u1"`
	C0 []byte             `cbor:"c0"`
	C1 []byte             `cbor:"c1"`
}

// MarshalReceiverMessage encodes m as CBOR.
func MarshalReceiverMessage(g group.Group, m *ReceiverMessage) ([]byte, error) {
	gd, err := g.Encode(m.G)
	if err != nil {
		return nil, err
	}
	hd, err := g.Encode(m.H)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&receiverMessageWire{G: gd, H: hd})
}

// UnmarshalReceiverMessage decodes a receiver message and checks that
// both elements are group members.
func UnmarshalReceiverMessage(g group.Group, data []byte) (*ReceiverMessage, error) {
	var w receiverMessageWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if w.G == nil || w.H == nil {
		return nil, fmt.Errorf("%w: receiver message is missing an element", ErrMalformedMessage)
	}
	ge, ok := g.Reconstruct(false, w.G)
	if !ok {
		return nil, fmt.Errorf("%w: g is not a group member", ErrMalformedMessage)
	}
	he, ok := g.Reconstruct(false, w.H)
	if !ok {
		return nil, fmt.Errorf("%w: h is not a group member", ErrMalformedMessage)
	}
	return &ReceiverMessage{G: ge, H: he}, nil
}

// MarshalSenderMessage encodes m as CBOR.
func MarshalSenderMessage(g group.Group, m *SenderMessage) ([]byte, error) {
	u0, err := g.Encode(m.U0)
	if err != nil {
		return nil, err
	}
	u1, err := g.Encode(m.U1)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&senderMessageWire{U0: u0, U1: u1, C0: m.C0, C1: m.C1})
}

// UnmarshalSenderMessage decodes a sender message. Elements are rebuilt
// without the membership test, which Receiver.Receive performs; data that
// cannot describe any point is already reported as a cheat attempt.
func UnmarshalSenderMessage(g group.Group, data []byte) (*SenderMessage, error) {
	var w senderMessageWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if w.U0 == nil || w.U1 == nil {
		return nil, fmt.Errorf("%w: sender message is missing an element", ErrMalformedMessage)
	}
	u0, ok := g.Reconstruct(true, w.U0)
	if !ok {
		return nil, &CheatError{Check: CheckU0Membership}
	}
	u1, ok := g.Reconstruct(true, w.U1)
	if !ok {
		return nil, &CheatError{Check: CheckU1Membership}
	}
	return &SenderMessage{U0: u0, U1: u1, C0: w.C0, C1: w.C1}, nil
}
