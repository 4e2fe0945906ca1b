package xdi2

/*
interceptor.go implements the Interceptor Chain: a single ordered
list of heterogeneous plug-ins, dispatched by capability rather than
by a common base type. Each stage asks the chain for the subset of
interceptors implementing that stage's capability, via a Go type
assertion, and invokes them in declared insertion order for both
before and after hooks -- the source's after ordering is head->tail,
not reversed, and this is preserved deliberately (Open Question a).
*/

// TargetLifecycleInterceptor is notified when a messaging target
// starts up and shuts down.
type TargetLifecycleInterceptor interface {
	Init(target MessagingTarget) error
	Shutdown(target MessagingTarget) error
}

// EnvelopeInterceptor hooks the outermost stage of dispatch.
// Before/After returning handled=true short-circuits the remainder
// of the envelope path; Exception is best-effort, invoked on every
// registered envelope interceptor regardless of whether other
// interceptors' Exception hooks themselves error.
type EnvelopeInterceptor interface {
	BeforeEnvelope(env *Envelope, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
	AfterEnvelope(env *Envelope, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
	Exception(env *Envelope, ctx *ExecutionContext, cause error) error
}

// MessageInterceptor hooks the per-message stage. A true return from
// Before/After causes the current message to be skipped; subsequent
// messages still run.
type MessageInterceptor interface {
	BeforeMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
	AfterMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
}

// OperationInterceptor hooks the per-operation stage. A true return
// causes the current operation to be skipped.
type OperationInterceptor interface {
	BeforeOperation(op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
	AfterOperation(op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
}

// TargetInterceptor may rewrite or drop the operation's target before
// contributors and handlers see it. Returning ok=false means "drop
// this target; do not invoke handlers."
type TargetInterceptor interface {
	TargetAddress(op *Operation, addr Segment, ctx *ExecutionContext) (rewritten Segment, ok bool, err error)
	TargetStatement(op *Operation, stmt Statement, ctx *ExecutionContext) (rewritten Statement, ok bool, err error)
}

// ResultInterceptor is given a chance to post-process the result
// once dispatch has otherwise completed successfully.
type ResultInterceptor interface {
	Finish(result *MessageResult, ctx *ExecutionContext) error
}

// InterceptorChain holds the single heterogeneous interceptor list
// and dispatches to each capability's hooks in insertion order.
type InterceptorChain struct {
	all []any
}

// NewInterceptorChain returns an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// Register appends an interceptor to the chain. An interceptor may
// implement any subset of the six capability interfaces; Register
// does not require it to implement all of them.
func (c *InterceptorChain) Register(i any) {
	c.all = append(c.all, i)
}

// snapshot guards against a chain mutation (an interceptor
// registering another interceptor) invalidating an in-flight
// iteration -- Open Question (c) applies here as much as it does to
// the contributor map.
func (c *InterceptorChain) snapshot() []any {
	out := make([]any, len(c.all))
	copy(out, c.all)
	return out
}

func (c *InterceptorChain) targetLifecycle() []TargetLifecycleInterceptor {
	var out []TargetLifecycleInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(TargetLifecycleInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *InterceptorChain) envelope() []EnvelopeInterceptor {
	var out []EnvelopeInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(EnvelopeInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *InterceptorChain) message() []MessageInterceptor {
	var out []MessageInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(MessageInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *InterceptorChain) operation() []OperationInterceptor {
	var out []OperationInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(OperationInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *InterceptorChain) target() []TargetInterceptor {
	var out []TargetInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(TargetInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *InterceptorChain) result() []ResultInterceptor {
	var out []ResultInterceptor
	for _, i := range c.snapshot() {
		if v, ok := i.(ResultInterceptor); ok {
			out = append(out, v)
		}
	}
	return out
}

// InitAll runs Init on every target-lifecycle interceptor. Per the
// resource model, this runs at target startup; a failure aborts
// startup and is returned to the caller.
func (c *InterceptorChain) InitAll(target MessagingTarget) error {
	for _, i := range c.targetLifecycle() {
		if err := i.Init(target); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownAll runs Shutdown on every target-lifecycle interceptor.
// Failures are returned to the logger (by the caller) but never
// prevent the remaining interceptors' Shutdown from running.
func (c *InterceptorChain) ShutdownAll(target MessagingTarget, onErr func(error)) {
	for _, i := range c.targetLifecycle() {
		if err := i.Shutdown(target); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

func (c *InterceptorChain) beforeEnvelope(env *Envelope, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.envelope() {
		h, err := i.BeforeEnvelope(env, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

func (c *InterceptorChain) afterEnvelope(env *Envelope, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.envelope() {
		h, err := i.AfterEnvelope(env, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

// broadcastException invokes Exception on every registered envelope
// interceptor. Errors raised by an interceptor's own Exception hook
// are reported through onErr but never abort the broadcast and never
// mask the original cause.
func (c *InterceptorChain) broadcastException(env *Envelope, ctx *ExecutionContext, cause error, onErr func(error)) {
	for _, i := range c.envelope() {
		if err := i.Exception(env, ctx, cause); err != nil && onErr != nil {
			onErr(err)
		}
	}
}

func (c *InterceptorChain) beforeMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.message() {
		h, err := i.BeforeMessage(msg, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

func (c *InterceptorChain) afterMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.message() {
		h, err := i.AfterMessage(msg, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

func (c *InterceptorChain) beforeOperation(op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.operation() {
		h, err := i.BeforeOperation(op, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

func (c *InterceptorChain) afterOperation(op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	for _, i := range c.operation() {
		h, err := i.AfterOperation(op, result, ctx)
		if err != nil {
			return false, err
		}
		if h {
			return true, nil
		}
	}
	return false, nil
}

// rewriteAddress runs the target-address chain. A nil ok return
// means some interceptor dropped the target; handlers must not run.
func (c *InterceptorChain) rewriteAddress(op *Operation, addr Segment, ctx *ExecutionContext) (Segment, bool, error) {
	cur := addr
	for _, i := range c.target() {
		rewritten, ok, err := i.TargetAddress(op, cur, ctx)
		if err != nil {
			return Segment{}, false, err
		}
		if !ok {
			return Segment{}, false, nil
		}
		cur = rewritten
	}
	return cur, true, nil
}

func (c *InterceptorChain) rewriteStatement(op *Operation, stmt Statement, ctx *ExecutionContext) (Statement, bool, error) {
	cur := stmt
	for _, i := range c.target() {
		rewritten, ok, err := i.TargetStatement(op, cur, ctx)
		if err != nil {
			return Statement{}, false, err
		}
		if !ok {
			return Statement{}, false, nil
		}
		cur = rewritten
	}
	return cur, true, nil
}

func (c *InterceptorChain) finish(result *MessageResult, ctx *ExecutionContext) error {
	for _, i := range c.result() {
		if err := i.Finish(result, ctx); err != nil {
			return err
		}
	}
	return nil
}
