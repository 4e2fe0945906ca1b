package xdi2

import "testing"

func TestGetSetDelAddressHandlers(t *testing.T) {
	g := NewMemoryGraph()
	ctx := NewExecutionContext(NewMessagingTarget(g))
	op := &Operation{OperationXri: OpSet}
	addr := MustParseXri("=alice+email")

	result := NewMessageResult()
	handled, err := setAddressHandler(addr, op, result, ctx)
	if err != nil || !handled {
		t.Fatalf("setAddressHandler: handled=%v err=%v", handled, err)
	}
	if !g.ContainsContextNode(addr) {
		t.Error("expected setAddressHandler to create the context node")
	}

	g.CreateLiteral(addr, "alice@example.com")
	getResult := NewMessageResult()
	handled, err = getAddressHandler(addr, op, getResult, ctx)
	if err != nil || !handled {
		t.Fatalf("getAddressHandler: handled=%v err=%v", handled, err)
	}
	// The literal plus the two context-node statements its path implies
	// (()/<>/=alice and =alice/<>/=alice+email).
	if len(getResult.Graph().Statements()) != 3 {
		t.Fatalf("expected three returned statements, got %d", len(getResult.Graph().Statements()))
	}

	delResult := NewMessageResult()
	handled, err = delAddressHandler(addr, op, delResult, ctx)
	if err != nil || !handled {
		t.Fatalf("delAddressHandler: handled=%v err=%v", handled, err)
	}
	if g.ContainsLiteral(addr) {
		t.Error("expected delAddressHandler to clear the literal")
	}
}

func TestGetSetDelStatementHandlers(t *testing.T) {
	g := NewMemoryGraph()
	ctx := NewExecutionContext(NewMessagingTarget(g))
	op := &Operation{OperationXri: OpSet}

	stmt := Statement{Kind: StatementRelation, Subject: MustParseXri("=alice"), Predicate: MustParseXri("+friend"), Object: MustParseXri("=carol")}
	result := NewMessageResult()
	handled, err := setStatementHandler(stmt, op, result, ctx)
	if err != nil || !handled {
		t.Fatalf("setStatementHandler: handled=%v err=%v", handled, err)
	}
	if !g.ContainsRelation(stmt.Subject, stmt.Predicate, stmt.Object) {
		t.Error("expected setStatementHandler to create the relation")
	}

	getResult := NewMessageResult()
	handled, err = getStatementHandler(stmt, op, getResult, ctx)
	if err != nil || !handled {
		t.Fatalf("getStatementHandler: handled=%v err=%v", handled, err)
	}
}

func TestAddressAliasInterceptorScoping(t *testing.T) {
	a := NewAddressAliasInterceptor()
	a.Operations = map[string]bool{OpGet: true}
	a.Alias(MustParseXri("=bob"), MustParseXri("=alice"))

	ctx := NewExecutionContext(nil)
	getOp := &Operation{OperationXri: OpGet}
	rewritten, ok, err := a.TargetAddress(getOp, MustParseXri("=bob"), ctx)
	if err != nil || !ok {
		t.Fatalf("TargetAddress: ok=%v err=%v", ok, err)
	}
	if !rewritten.Equal(MustParseXri("=alice")) {
		t.Errorf("TargetAddress rewrote to %q, want =alice", rewritten.String())
	}

	setOp := &Operation{OperationXri: OpSet}
	unrewritten, ok, err := a.TargetAddress(setOp, MustParseXri("=bob"), ctx)
	if err != nil || !ok {
		t.Fatalf("TargetAddress (out of scope): ok=%v err=%v", ok, err)
	}
	if !unrewritten.Equal(MustParseXri("=bob")) {
		t.Error("expected the alias to be scoped to $get only, leaving =bob untouched for $set")
	}
}
