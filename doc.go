/*
Package xdi2 implements the core of an XDI (Extensible Data Interchange)
message-execution pipeline: a dispatcher that routes a message envelope
through a composable chain of interceptors and contributors, down to
handlers that read and write an underlying semantic graph.

# Scope

This package covers the dispatcher, the interceptor chain, the
contributor map, the execution context, and the graph/identifier data
model needed to exercise them. It does not cover any particular
durable graph storage engine, the full XRI lexical grammar, wire
transport, or any one specific authentication algorithm -- those are
external collaborators reached through small interfaces
([Graph], [Authenticator], [AddressHandler], [StatementHandler]).

# Basic Usage

	g := xdi2.NewMemoryGraph()
	target := xdi2.NewMessagingTarget(g)
	dispatcher := xdi2.NewDispatcher(target)

	env := xdi2.NewEnvelope()
	msg := env.AddMessage(xdi2.NewXri("=alice"))
	msg.AddOperation(xdi2.OpGet, xdi2.NewXri("=alice+email"))

	result := xdi2.NewMessageResult()
	err := dispatcher.Execute(context.Background(), env, result, nil)

# Abstraction Notice

The XDI message-exchange model admits more than one faithful
implementation of its dispatch semantics; this package is one
interpretation, built around a fixed set of invariants and worked
scenarios, not a transliteration of any single prior codebase.
*/
package xdi2
