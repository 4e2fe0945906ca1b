package xdi2

import (
	"context"
	"log/slog"
)

/*
handler.go implements the Handler Surface: AddressHandler and
StatementHandler are the leaf plug-ins invoked once contributor
dispatch has not itself claimed "handled" for a target; they may
mutate the backing graph, populate the result, or do nothing.
MessagingTarget is the strategy interface a concrete system exposes
to resolve a handler for a given target.
*/

// AddressHandler resolves and executes a single operation against an
// address target.
type AddressHandler interface {
	ExecuteOnAddress(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
}

// StatementHandler resolves and executes a single operation against
// a statement target.
type StatementHandler interface {
	ExecuteOnStatement(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
}

// AddressHandlerFunc adapts a plain function to an AddressHandler.
type AddressHandlerFunc func(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error)

func (f AddressHandlerFunc) ExecuteOnAddress(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	return f(addr, op, result, ctx)
}

// StatementHandlerFunc adapts a plain function to a StatementHandler.
type StatementHandlerFunc func(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error)

func (f StatementHandlerFunc) ExecuteOnStatement(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	return f(stmt, op, result, ctx)
}

/*
MessagingTarget is the messaging-target collaborator a concrete
system supplies to the Dispatcher: the backing Graph, the
ContributorMap, the InterceptorChain, and the two handler-resolution
hooks. It is read-shared across concurrent Execute calls; its
configuration is expected to be fixed at construction time (see
NewMessagingTarget's functional options).
*/
type MessagingTarget interface {
	Graph() Graph
	Contributors() *ContributorMap
	Interceptors() *InterceptorChain
	AddressHandlerFor(addr Segment, op *Operation) AddressHandler
	StatementHandlerFor(stmt Statement, op *Operation) StatementHandler
}

// defaultMessagingTarget is the MessagingTarget implementation
// returned by NewMessagingTarget. It resolves a per-operation handler
// from a table keyed by operation-XRI, preloaded with the graph-backed
// defaults and overridable per tag; an operation-XRI with no entry
// resolves to no handler (nil).
type defaultMessagingTarget struct {
	graph        Graph
	contributors *ContributorMap
	interceptors *InterceptorChain
	logger       *logHandle

	addressHandlers   map[string]AddressHandler
	statementHandlers map[string]StatementHandler
}

// Option configures a MessagingTarget at construction time.
type Option func(*defaultMessagingTarget)

// WithLogger installs a structured logger used to trace handler
// resolution in AddressHandlerFor and StatementHandlerFor. Passing nil
// (the default) disables logging.
func WithLogger(l *logHandle) Option {
	return func(t *defaultMessagingTarget) { t.logger = l }
}

// WithContributors installs a pre-populated contributor map in place
// of an empty one.
func WithContributors(m *ContributorMap) Option {
	return func(t *defaultMessagingTarget) { t.contributors = m }
}

// WithInterceptors installs a pre-populated interceptor chain in
// place of an empty one.
func WithInterceptors(c *InterceptorChain) Option {
	return func(t *defaultMessagingTarget) { t.interceptors = c }
}

// WithAddressHandler registers a handler for a specific operation-XRI
// on the address path, overriding the package default for that tag.
func WithAddressHandler(operationXri string, h AddressHandler) Option {
	return func(t *defaultMessagingTarget) { t.addressHandlers[operationXri] = h }
}

// WithStatementHandler registers a handler for a specific
// operation-XRI on the statement path.
func WithStatementHandler(operationXri string, h StatementHandler) Option {
	return func(t *defaultMessagingTarget) { t.statementHandlers[operationXri] = h }
}

// NewMessagingTarget constructs the default MessagingTarget over g,
// installing the package's default Get/Set/Del handlers (see
// handlers.go) unless overridden by an Option.
func NewMessagingTarget(g Graph, opts ...Option) MessagingTarget {
	t := &defaultMessagingTarget{
		graph:             g,
		contributors:      NewContributorMap(),
		interceptors:      NewInterceptorChain(),
		addressHandlers:   make(map[string]AddressHandler),
		statementHandlers: make(map[string]StatementHandler),
	}
	t.addressHandlers[OpGet] = AddressHandlerFunc(getAddressHandler)
	t.addressHandlers[OpSet] = AddressHandlerFunc(setAddressHandler)
	t.addressHandlers[OpAdd] = AddressHandlerFunc(setAddressHandler)
	t.addressHandlers[OpDel] = AddressHandlerFunc(delAddressHandler)
	t.statementHandlers[OpGet] = StatementHandlerFunc(getStatementHandler)
	t.statementHandlers[OpSet] = StatementHandlerFunc(setStatementHandler)
	t.statementHandlers[OpAdd] = StatementHandlerFunc(setStatementHandler)
	t.statementHandlers[OpDel] = StatementHandlerFunc(delStatementHandler)

	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *defaultMessagingTarget) Graph() Graph                       { return t.graph }
func (t *defaultMessagingTarget) Contributors() *ContributorMap       { return t.contributors }
func (t *defaultMessagingTarget) Interceptors() *InterceptorChain     { return t.interceptors }

func (t *defaultMessagingTarget) AddressHandlerFor(addr Segment, op *Operation) AddressHandler {
	h, ok := t.addressHandlers[op.OperationXri]
	if !ok {
		t.logger.debug(context.Background(), "no address handler for operation",
			slog.String("operation", op.OperationXri), slog.String("address", addr.String()))
		return nil
	}
	t.logger.debug(context.Background(), "resolved address handler",
		slog.String("operation", op.OperationXri), slog.String("address", addr.String()))
	return h
}

func (t *defaultMessagingTarget) StatementHandlerFor(stmt Statement, op *Operation) StatementHandler {
	h, ok := t.statementHandlers[op.OperationXri]
	if !ok {
		t.logger.debug(context.Background(), "no statement handler for operation",
			slog.String("operation", op.OperationXri))
		return nil
	}
	t.logger.debug(context.Background(), "resolved statement handler",
		slog.String("operation", op.OperationXri))
	return h
}
