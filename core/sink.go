package core

// Sink receives each message synchronously, in order, right after it is
// appended to the conversation. Sinks are best-effort: a failing or
// panicking sink must never affect orchestration state. There is no
// backpressure contract, so a slow sink stalls the round.
type Sink interface {
	OnMessage(msg Message)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Message)

// OnMessage implements Sink.
func (f SinkFunc) OnMessage(msg Message) { f(msg) }
