package xdi2

import (
	"errors"
	"testing"
)

func TestSecretTokenAuthenticator(t *testing.T) {
	a := NewSecretTokenAuthenticator(4)
	sender := MustParseXri("=alice")
	if err := a.Register(sender, "correct-horse"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	msg := &Message{Sender: sender}
	ok, err := a.Authenticate(msg, "correct-horse")
	if err != nil || !ok {
		t.Fatalf("Authenticate(correct): ok=%v err=%v", ok, err)
	}
	ok, err = a.Authenticate(msg, "wrong")
	if err != nil || ok {
		t.Fatalf("Authenticate(wrong): ok=%v err=%v, want ok=false, err=nil", ok, err)
	}

	unregistered := &Message{Sender: MustParseXri("=bob")}
	ok, err = a.Authenticate(unregistered, "anything")
	if err != nil || ok {
		t.Fatalf("Authenticate(unregistered sender): ok=%v err=%v", ok, err)
	}
}

func TestNTLMCredentialSplitting(t *testing.T) {
	domain, user, password, ok := splitNTLMCredential(`CORP\jdoe:hunter2`)
	if !ok || domain != "CORP" || user != "jdoe" || password != "hunter2" {
		t.Errorf("splitNTLMCredential = %q %q %q %v, want CORP jdoe hunter2 true", domain, user, password, ok)
	}

	if _, _, _, ok := splitNTLMCredential("no-separators-here"); ok {
		t.Error("expected a credential with no backslash/colon to fail to split")
	}
}

func TestAuthInterceptorWritesValidityLiteral(t *testing.T) {
	g := NewMemoryGraph()
	a := NewSecretTokenAuthenticator(4)
	sender := MustParseXri("=alice")
	a.Register(sender, "pw")

	target := NewMessagingTarget(g)
	ctx := NewExecutionContext(target)
	interceptor := NewAuthInterceptor(a)

	msg := &Message{Sender: sender, SecretToken: "pw"}
	handled, err := interceptor.BeforeMessage(msg, NewMessageResult(), ctx)
	if err != nil {
		t.Fatalf("BeforeMessage: %v", err)
	}
	if handled {
		t.Error("a successful authentication should not itself short-circuit message dispatch")
	}
	if v, ok := g.Literal(sender.Concat(secretValidPredicate)); !ok || v != "true" {
		t.Errorf("validity literal = %q, %v, want \"true\", true", v, ok)
	}
}

func TestAuthInterceptorRejectsBadToken(t *testing.T) {
	g := NewMemoryGraph()
	a := NewSecretTokenAuthenticator(4)
	sender := MustParseXri("=alice")
	a.Register(sender, "pw")

	target := NewMessagingTarget(g)
	ctx := NewExecutionContext(target)
	interceptor := NewAuthInterceptor(a)

	msg := &Message{Sender: sender, SecretToken: "wrong"}
	_, err := interceptor.BeforeMessage(msg, NewMessageResult(), ctx)
	if err == nil {
		t.Fatal("expected an AuthenticationError for a bad token")
	}
	var ae *AuthenticationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AuthenticationError, got %T", err)
	}
}
