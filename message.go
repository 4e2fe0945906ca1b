package xdi2

import (
	"github.com/google/uuid"
)

/*
message.go implements the message envelope shape: an Envelope carries
zero or more Messages, each Message carries one or more Operations.
Each Operation has an operation-XRI type tag and a target, which is
either a plain address Segment or a Segment that encodes a serialized
subject/predicate/object statement.
*/

// Well-known operation-XRI type tags.
const (
	OpGet = "$get"
	OpSet = "$set"
	OpAdd = "$add"
	OpMod = "$mod"
	OpDel = "$del"
)

// Operation is a single request within a Message: an operation-XRI
// tag and a target (address or statement-encoded segment).
type Operation struct {
	TraceID      uuid.UUID
	OperationXri string
	Target       Segment
	message      *Message
}

// Message returns the Operation's owning Message.
func (o *Operation) Message() *Message {
	if o == nil {
		return nil
	}
	return o.message
}

/*
Message is one sender's contribution to an Envelope: a subject
identity, an optional secret token, and one or more Operations.
*/
type Message struct {
	TraceID     uuid.UUID
	Sender      Segment
	SecretToken string
	Operations  []*Operation
	envelope    *Envelope
}

// Envelope returns the Message's owning Envelope.
func (m *Message) Envelope() *Envelope {
	if m == nil {
		return nil
	}
	return m.envelope
}

// AddOperation appends a new Operation with the given operation-XRI
// tag and target to the message, in insertion order.
func (m *Message) AddOperation(operationXri string, target Segment) *Operation {
	op := &Operation{TraceID: uuid.New(), OperationXri: operationXri, Target: target, message: m}
	m.Operations = append(m.Operations, op)
	return op
}

// Envelope is a specialized graph shape carrying zero or more
// Messages, each to be executed in insertion order.
type Envelope struct {
	Messages []*Message
}

// NewEnvelope returns an empty envelope.
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// AddMessage appends a new Message from sender to the envelope, in
// insertion order.
func (e *Envelope) AddMessage(sender Segment) *Message {
	msg := &Message{TraceID: uuid.New(), Sender: sender, envelope: e}
	e.Messages = append(e.Messages, msg)
	return msg
}
