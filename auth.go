package xdi2

import (
	"github.com/Azure/go-ntlmssp"
	"golang.org/x/crypto/bcrypt"
)

/*
auth.go implements the Authenticator collaborator and a concrete
message-interceptor that realizes scenarios S1/S2: a sender identity
plus a secret token, checked against a configured authenticator. On
success a true literal is written under the sender's address, at
<sender><$secret><$token><$valid>; messages have no context node of
their own, so nothing is written on a message node. On failure nothing
is written and an AuthenticationError is raised.
*/

// Authenticator is the external collaborator described by spec §6:
// Init/Shutdown lifecycle plus a single credential check.
type Authenticator interface {
	Init() error
	Shutdown() error
	Authenticate(msg *Message, secretToken string) (bool, error)
}

/*
SecretTokenAuthenticator checks a message's secret token against a
bcrypt hash registered for the sender's canonical address string. Use
Register to install a (sender, token) pair -- the token is hashed
immediately, so the plaintext is never retained.
*/
type SecretTokenAuthenticator struct {
	hashes map[string][]byte
	cost   int
}

// NewSecretTokenAuthenticator returns an authenticator with no
// registered senders. cost is the bcrypt work factor; zero selects
// bcrypt.DefaultCost.
func NewSecretTokenAuthenticator(cost int) *SecretTokenAuthenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &SecretTokenAuthenticator{hashes: make(map[string][]byte), cost: cost}
}

// Register hashes token and associates it with sender.
func (a *SecretTokenAuthenticator) Register(sender Segment, token string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(token), a.cost)
	if err != nil {
		return err
	}
	a.hashes[sender.String()] = h
	return nil
}

func (a *SecretTokenAuthenticator) Init() error     { return nil }
func (a *SecretTokenAuthenticator) Shutdown() error { return nil }

// Authenticate compares secretToken against the hash registered for
// msg.Sender, returning false (not an error) on a bad credential; an
// error return is reserved for an authenticator malfunction.
func (a *SecretTokenAuthenticator) Authenticate(msg *Message, secretToken string) (bool, error) {
	h, ok := a.hashes[msg.Sender.String()]
	if !ok {
		return false, nil
	}
	if err := bcrypt.CompareHashAndPassword(h, []byte(secretToken)); err != nil {
		return false, nil
	}
	return true, nil
}

/*
NTLMAuthenticator is a second Authenticator implementation, wired for
sender identities that present domain-style credentials rather than a
bare secret token. Authenticate treats secretToken as "domain\user:password"
and succeeds when the token splits into those three parts, a challenge
is registered for that user, and ntlmssp.ProcessChallenge can build an
authenticate message from that challenge and the credentials. Init
checks that a negotiate message can be produced for the workstation.
No live negotiation takes place, and the password is not compared with
any stored secret: any password passes once a parseable challenge is
registered for the user.
*/
type NTLMAuthenticator struct {
	Workstation string
	challenges  map[string][]byte
}

// NewNTLMAuthenticator returns an authenticator for workstation.
func NewNTLMAuthenticator(workstation string) *NTLMAuthenticator {
	return &NTLMAuthenticator{Workstation: workstation, challenges: make(map[string][]byte)}
}

// RegisterChallenge stores the NTLM challenge message issued to user
// so a later Authenticate call can validate an authenticate message
// derived from it.
func (a *NTLMAuthenticator) RegisterChallenge(user string, challenge []byte) {
	a.challenges[user] = challenge
}

func (a *NTLMAuthenticator) Init() error {
	_, err := ntlmssp.NewNegotiateMessage("", a.Workstation)
	return err
}

func (a *NTLMAuthenticator) Shutdown() error { return nil }

func (a *NTLMAuthenticator) Authenticate(msg *Message, secretToken string) (bool, error) {
	domain, user, password, ok := splitNTLMCredential(secretToken)
	if !ok {
		return false, nil
	}
	challenge, ok := a.challenges[user]
	if !ok {
		return false, nil
	}
	if _, err := ntlmssp.ProcessChallenge(challenge, domain+"\\"+user, password); err != nil {
		return false, nil
	}
	return true, nil
}

func splitNTLMCredential(s string) (domain, user, password string, ok bool) {
	backslash := -1
	colon := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if backslash == -1 {
				backslash = i
			}
		case ':':
			if colon == -1 {
				colon = i
			}
		}
	}
	if backslash == -1 || colon == -1 || colon < backslash {
		return "", "", "", false
	}
	return s[:backslash], s[backslash+1 : colon], s[colon+1:], true
}

/*
AuthInterceptor is a MessageInterceptor realizing the S1/S2 scenario:
on BeforeMessage it authenticates msg.Sender/msg.SecretToken against
the configured Authenticator. On success it writes the boolean literal
"true" to <sender><$secret><$token><$valid> and allows the message to
proceed. On failure it raises an *AuthenticationError, which the
dispatcher wraps into a MessagingError and propagates -- it does not
itself return handled=true, since a failed authentication is an
exceptional condition per spec §8 S2, not a silent skip.
*/
type AuthInterceptor struct {
	Authenticator Authenticator
}

// NewAuthInterceptor returns an interceptor delegating to a.
func NewAuthInterceptor(a Authenticator) *AuthInterceptor {
	return &AuthInterceptor{Authenticator: a}
}

var secretValidPredicate = NewXri("$secret$token$valid")

func (a *AuthInterceptor) BeforeMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	ok, err := a.Authenticator.Authenticate(msg, msg.SecretToken)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &AuthenticationError{Sender: msg.Sender.String()}
	}

	g := ctx.MessagingTarget().Graph()
	if err := g.SetDeepLiteralBoolean(msg.Sender.Concat(secretValidPredicate), true); err != nil {
		return false, err
	}
	return false, nil
}

func (a *AuthInterceptor) AfterMessage(msg *Message, result *MessageResult, ctx *ExecutionContext) (bool, error) {
	return false, nil
}
