package xdi2

import "testing"

func TestContributorLongestPrefixWins(t *testing.T) {
	m := NewContributorMap()
	outer := &stubContributor{handled: true}
	inner := &stubContributor{handled: true}

	m.Register(MustParseXri("=alice"), outer)
	m.Register(MustParseXri("=alice+email"), inner)

	key, ok := m.FindHigherContributorXri(MustParseXri("=alice+email+work"))
	if !ok {
		t.Fatal("expected a matching contributor prefix")
	}
	if want := MustParseXri("=alice+email"); !key.Equal(want) {
		t.Errorf("FindHigherContributorXri matched %q, want the longer prefix %q", key.String(), want.String())
	}
}

func TestContributorAddressDispatchShortCircuits(t *testing.T) {
	m := NewContributorMap()
	first := &stubContributor{handled: false}
	second := &stubContributor{handled: true}
	m.Register(MustParseXri("=alice"), first)
	m.Register(MustParseXri("=alice"), second)

	ctx := NewExecutionContext(nil)
	result := NewMessageResult()
	op := &Operation{OperationXri: OpGet}

	target := MustParseXri("=alice+email")
	_, handled, err := m.ExecuteContributorsAddress(nil, target, target, op, result, ctx)
	if err != nil {
		t.Fatalf("ExecuteContributorsAddress: %v", err)
	}
	if !handled {
		t.Fatal("expected the second contributor's handled=true to short-circuit the chain")
	}
	if got := ctx.StackDepth(); got != 0 {
		t.Errorf("contributor stack depth after dispatch = %d, want 0", got)
	}
}

func TestContributorStackBalancedOnError(t *testing.T) {
	m := NewContributorMap()
	failing := &stubContributor{err: ErrNoHandler}
	m.Register(MustParseXri("=alice"), failing)

	ctx := NewExecutionContext(nil)
	result := NewMessageResult()
	op := &Operation{OperationXri: OpGet}
	target := MustParseXri("=alice+email")

	_, _, err := m.ExecuteContributorsAddress(nil, target, target, op, result, ctx)
	if err == nil {
		t.Fatal("expected the contributor's error to propagate")
	}
	if got := ctx.StackDepth(); got != 0 {
		t.Errorf("contributor stack depth after an error exit = %d, want 0", got)
	}
}

func TestFindLowerAndMatchingContributorXri(t *testing.T) {
	m := NewContributorMap()
	c := &stubContributor{}
	key := MustParseXri("=alice+email+work")
	m.Register(key, c)

	if got, ok := m.FindMatchingContributorXri(key); !ok || !got.Equal(key) {
		t.Error("expected an exact-key match via FindMatchingContributorXri")
	}
	if got, ok := m.FindLowerContributorXri(MustParseXri("=alice")); !ok || !got.Equal(key) {
		t.Error("expected FindLowerContributorXri to find a registered key nested under the queried address")
	}
	if _, ok := m.FindMatchingContributorXri(MustParseXri("=alice")); ok {
		t.Error("exact-key lookup should not match a strict prefix")
	}
}

func TestContributorRegisterByDeclaredAddresses(t *testing.T) {
	m := NewContributorMap()
	c := &stubContributor{addresses: []Segment{MustParseXri("=bob"), MustParseXri("=carol")}}
	m.Register(MustParseXri("=alice"), c)

	for _, addr := range []string{"=alice", "=bob", "=carol"} {
		if _, ok := m.FindMatchingContributorXri(MustParseXri(addr)); !ok {
			t.Errorf("expected a contributor entry at declared address %q", addr)
		}
	}
}
