package xdi2

/*
handlers.go supplies the default address and statement handlers keyed
by operation-XRI, sufficient to resolve scenarios S1, S3, S4 and S5:
a $get that reads a literal or relation, a $set/$add that writes one,
and a $del that clears a literal (relations and context nodes are not
removed). Contributors installed ahead of these
(S3) suppress them entirely, since the dispatcher only resolves a
handler once contributor dispatch has not itself returned handled.
*/

func getAddressHandler(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	g := ctx.MessagingTarget().Graph()
	if data, ok := g.Literal(addr); ok {
		if err := result.AddStatement(Statement{Kind: StatementLiteral, Subject: addr, Data: data}); err != nil {
			return false, newGraphError("Get", err)
		}
		return true, nil
	}
	if n, _ := g.FindContextNode(addr, false); n != nil {
		if err := result.AddStatement(Statement{Kind: StatementContextNode, Subject: n.Parent().Address(), Predicate: contextMarker, Object: addr}); err != nil {
			return false, newGraphError("Get", err)
		}
		return true, nil
	}
	return false, nil
}

func setAddressHandler(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	g := ctx.MessagingTarget().Graph()
	if _, err := g.FindContextNode(addr, true); err != nil {
		return false, newGraphError("Set", err)
	}
	return true, nil
}

func delAddressHandler(addr Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	// The in-memory graph backend does not expose node removal (no
	// spec invariant requires it of the Graph Abstraction); a
	// concrete backend wishing to support $del detaches the subtree
	// itself. Here we only clear a literal, if present, by reaching into
	// a *MemoryGraph's node; the Graph interface exposes no deletion.
	g := ctx.MessagingTarget().Graph()
	if mg, ok := g.(*MemoryGraph); ok {
		n, _ := mg.FindContextNode(addr, false)
		if n == nil {
			return false, nil
		}
		n.mu.Lock()
		had := n.literal != nil
		n.literal = nil
		n.mu.Unlock()
		return had, nil
	}
	return false, nil
}

func getStatementHandler(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	g := ctx.MessagingTarget().Graph()
	switch stmt.Kind {
	case StatementRelation:
		if g.ContainsRelation(stmt.Subject, stmt.Predicate, stmt.Object) {
			return true, result.AddStatement(stmt)
		}
	case StatementLiteral:
		if data, ok := g.Literal(stmt.Subject); ok && (len(stmt.Data) == 0 || data == stmt.Data) {
			return true, result.AddStatement(Statement{Kind: StatementLiteral, Subject: stmt.Subject, Data: data})
		}
	case StatementContextNode:
		if g.ContainsContextNode(stmt.Object) {
			return true, result.AddStatement(stmt)
		}
	}
	return false, nil
}

func setStatementHandler(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	g := ctx.MessagingTarget().Graph()
	if err := g.AddStatement(stmt); err != nil {
		return false, err
	}
	return true, nil
}

func delStatementHandler(stmt Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	mg, ok := ctx.MessagingTarget().Graph().(*MemoryGraph)
	if !ok || stmt.Kind != StatementLiteral {
		return false, nil
	}
	n, _ := mg.FindContextNode(stmt.Subject, false)
	if n == nil {
		return false, nil
	}
	n.mu.Lock()
	had := n.literal != nil
	n.literal = nil
	n.mu.Unlock()
	return had, nil
}

/*
AddressAliasInterceptor implements the S4 scenario: a small
address-to-address rewrite table consulted on the target-address
path, scoped to one or more operation-XRI tags (empty means "all
operations").
*/
type AddressAliasInterceptor struct {
	Operations map[string]bool // nil/empty => applies to every operation
	Aliases    map[string]Segment
}

// NewAddressAliasInterceptor returns an interceptor with an empty
// alias table.
func NewAddressAliasInterceptor() *AddressAliasInterceptor {
	return &AddressAliasInterceptor{Aliases: make(map[string]Segment)}
}

// Alias registers that from should be rewritten to to.
func (a *AddressAliasInterceptor) Alias(from, to Segment) {
	a.Aliases[from.String()] = to
}

func (a *AddressAliasInterceptor) applies(op *Operation) bool {
	if len(a.Operations) == 0 {
		return true
	}
	return a.Operations[op.OperationXri]
}

func (a *AddressAliasInterceptor) TargetAddress(op *Operation, addr Segment, ctx *ExecutionContext) (Segment, bool, error) {
	if a.applies(op) {
		if to, ok := a.Aliases[addr.String()]; ok {
			return to, true, nil
		}
	}
	return addr, true, nil
}

func (a *AddressAliasInterceptor) TargetStatement(op *Operation, stmt Statement, ctx *ExecutionContext) (Statement, bool, error) {
	if a.applies(op) {
		if to, ok := a.Aliases[stmt.Subject.String()]; ok {
			stmt.Subject = to
		}
	}
	return stmt, true, nil
}
