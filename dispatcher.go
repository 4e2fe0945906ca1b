package xdi2

import (
	"context"
	"log/slog"
)

/*
dispatcher.go implements the Dispatcher: the envelope -> message ->
operation loop, the address/statement target split, short-circuit
handling at every scope, and the exception path. This is the
component spec.md calls "the hard part" -- everything else in this
package exists to be composed by Execute.
*/

// Hooks bundles the before/after/exception callbacks the source
// expressed as subclass overrides. Any field left nil is treated as
// a no-op. Injecting this as an explicit struct (rather than
// requiring embedding/inheritance) is the redesign called for by
// spec §9.
type Hooks struct {
	BeforeEnvelope func(env *Envelope, ctx *ExecutionContext) error
	AfterEnvelope  func(env *Envelope, ctx *ExecutionContext) error
	ExceptionHook  func(env *Envelope, ctx *ExecutionContext, cause error) error

	BeforeMessage func(msg *Message, ctx *ExecutionContext) error
	AfterMessage  func(msg *Message, ctx *ExecutionContext) error

	BeforeOperation func(op *Operation, ctx *ExecutionContext) error
	AfterOperation  func(op *Operation, ctx *ExecutionContext) error
}

func (h *Hooks) beforeEnvelope(env *Envelope, ctx *ExecutionContext) error {
	if h == nil || h.BeforeEnvelope == nil {
		return nil
	}
	return h.BeforeEnvelope(env, ctx)
}
func (h *Hooks) afterEnvelope(env *Envelope, ctx *ExecutionContext) error {
	if h == nil || h.AfterEnvelope == nil {
		return nil
	}
	return h.AfterEnvelope(env, ctx)
}
func (h *Hooks) exception(env *Envelope, ctx *ExecutionContext, cause error) error {
	if h == nil || h.ExceptionHook == nil {
		return nil
	}
	return h.ExceptionHook(env, ctx, cause)
}
func (h *Hooks) beforeMessage(msg *Message, ctx *ExecutionContext) error {
	if h == nil || h.BeforeMessage == nil {
		return nil
	}
	return h.BeforeMessage(msg, ctx)
}
func (h *Hooks) afterMessage(msg *Message, ctx *ExecutionContext) error {
	if h == nil || h.AfterMessage == nil {
		return nil
	}
	return h.AfterMessage(msg, ctx)
}
func (h *Hooks) beforeOperation(op *Operation, ctx *ExecutionContext) error {
	if h == nil || h.BeforeOperation == nil {
		return nil
	}
	return h.BeforeOperation(op, ctx)
}
func (h *Hooks) afterOperation(op *Operation, ctx *ExecutionContext) error {
	if h == nil || h.AfterOperation == nil {
		return nil
	}
	return h.AfterOperation(op, ctx)
}

// Dispatcher owns the Execute entry point over one MessagingTarget.
type Dispatcher struct {
	target MessagingTarget
	hooks  *Hooks
	logger *logHandle
}

// DispatcherOption configures a Dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithHooks installs the before/after/exception hook bundle.
func WithHooks(h *Hooks) DispatcherOption {
	return func(d *Dispatcher) { d.hooks = h }
}

// WithDispatcherLogger installs a structured logger that receives a
// warning whenever an exception interceptor or the exception hook fails.
func WithDispatcherLogger(l *logHandle) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher returns a Dispatcher bound to target.
func NewDispatcher(target MessagingTarget, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{target: target, hooks: &Hooks{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

/*
Execute runs the eight-step dispatch algorithm against env, writing
results into result. If ctx is nil, a fresh ExecutionContext bound to
the dispatcher's target is created. Any error -- from a hook, an
interceptor, a contributor or a handler -- is wrapped into a
*MessagingError bearing the offending operation (where known) before
the envelope-interceptor Exception broadcast runs and the error is
returned to the caller. Result-interceptors do not run on the failing
path; exception-interceptors do.
*/
func (d *Dispatcher) Execute(goCtx context.Context, env *Envelope, result *MessageResult, ctx *ExecutionContext) error {
	if env == nil {
		return ErrNilEnvelope
	}
	if result == nil {
		result = NewMessageResult()
	}
	if ctx == nil {
		ctx = NewExecutionContext(d.target)
	}

	err := d.execute(goCtx, env, result, ctx)
	if err != nil {
		wrapped := asMessagingError(currentOperation(ctx), err)
		d.target.Interceptors().broadcastException(env, ctx, wrapped, func(e error) {
			d.logWarn(goCtx, "exception interceptor failed", slog.Any("error", e))
		})
		if hookErr := d.hooks.exception(env, ctx, wrapped); hookErr != nil {
			d.logWarn(goCtx, "exception hook failed", slog.Any("error", hookErr))
		}
		return wrapped
	}
	return nil
}

// currentOperationKey is the well-known execution-context key the
// dispatcher uses to remember the operation currently in flight, so
// the exception path can attribute an error even when it surfaces
// above operation granularity (e.g. from a message-interceptor).
const currentOperationKey = "xdi2.currentOperation"

func currentOperation(ctx *ExecutionContext) *Operation {
	v, ok := ctx.GetAttribute(ScopeOperation, currentOperationKey)
	if !ok {
		return nil
	}
	op, _ := v.(*Operation)
	return op
}

func (d *Dispatcher) execute(goCtx context.Context, env *Envelope, result *MessageResult, ctx *ExecutionContext) error {
	interceptors := d.target.Interceptors()

	ctx.ClearScope(ScopeEnvelope)

	if err := d.hooks.beforeEnvelope(env, ctx); err != nil {
		return err
	}

	if handled, err := interceptors.beforeEnvelope(env, result, ctx); err != nil {
		return err
	} else if handled {
		return nil
	}

	for _, msg := range env.Messages {
		if err := d.executeMessage(goCtx, msg, result, ctx); err != nil {
			return err
		}
	}

	if handled, err := interceptors.afterEnvelope(env, result, ctx); err != nil {
		return err
	} else if handled {
		return nil
	}

	if err := d.hooks.afterEnvelope(env, ctx); err != nil {
		return err
	}

	return interceptors.finish(result, ctx)
}

func (d *Dispatcher) executeMessage(goCtx context.Context, msg *Message, result *MessageResult, ctx *ExecutionContext) error {
	interceptors := d.target.Interceptors()

	ctx.ClearScope(ScopeMessage)

	if err := d.hooks.beforeMessage(msg, ctx); err != nil {
		return err
	}

	if handled, err := interceptors.beforeMessage(msg, result, ctx); err != nil {
		return err
	} else if handled {
		return nil
	}

	for _, op := range msg.Operations {
		if err := d.executeOperation(goCtx, op, result, ctx); err != nil {
			return err
		}
	}

	if handled, err := interceptors.afterMessage(msg, result, ctx); err != nil {
		return err
	} else if handled {
		return nil
	}

	return d.hooks.afterMessage(msg, ctx)
}

func (d *Dispatcher) executeOperation(goCtx context.Context, op *Operation, result *MessageResult, ctx *ExecutionContext) (err error) {
	interceptors := d.target.Interceptors()
	contributors := d.target.Contributors()

	ctx.ClearScope(ScopeOperation)
	ctx.PutAttribute(ScopeOperation, currentOperationKey, op)

	defer func() {
		if err != nil {
			err = asMessagingError(op, err)
		}
	}()

	if err = d.hooks.beforeOperation(op, ctx); err != nil {
		return err
	}

	if handled, herr := interceptors.beforeOperation(op, result, ctx); herr != nil {
		return herr
	} else if handled {
		return nil
	}

	handled, herr := d.dispatchTarget(op, result, ctx, contributors, interceptors)
	if herr != nil {
		return herr
	}
	_ = handled

	if handled, aerr := interceptors.afterOperation(op, result, ctx); aerr != nil {
		return aerr
	} else if handled {
		return nil
	}

	return d.hooks.afterOperation(op, ctx)
}

/*
dispatchTarget implements the address/statement split: it attempts to
parse op.Target as a statement; on parse failure it falls back to
treating the target as a plain address. Each path runs its
target-interceptor rewrite chain, then contributor dispatch, then (if
still unhandled) the resolved handler.
*/
func (d *Dispatcher) dispatchTarget(op *Operation, result *MessageResult, ctx *ExecutionContext, contributors *ContributorMap, interceptors *InterceptorChain) (bool, error) {
	if stmt, ok := ParseStatement(op.Target); ok {
		rewritten, keep, err := interceptors.rewriteStatement(op, stmt, ctx)
		if err != nil {
			return false, err
		}
		if !keep {
			return false, nil
		}

		_, handled, err := contributors.ExecuteContributorsStatement(nil, rewritten, rewritten, op, result, ctx)
		if err != nil {
			return false, err
		}
		if handled {
			return true, nil
		}

		h := d.target.StatementHandlerFor(rewritten, op)
		if h == nil {
			return false, nil
		}
		return h.ExecuteOnStatement(rewritten, op, result, ctx)
	}

	rewritten, keep, err := interceptors.rewriteAddress(op, op.Target, ctx)
	if err != nil {
		return false, err
	}
	if !keep {
		return false, nil
	}

	_, handled, err := contributors.ExecuteContributorsAddress(nil, rewritten, rewritten, op, result, ctx)
	if err != nil {
		return false, err
	}
	if handled {
		return true, nil
	}

	h := d.target.AddressHandlerFor(rewritten, op)
	if h == nil {
		return false, nil
	}
	return h.ExecuteOnAddress(rewritten, op, result, ctx)
}

func (d *Dispatcher) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if d.logger == nil {
		return
	}
	d.logger.warn(ctx, msg, attrs...)
}
