package xdi2

import (
	"sort"
)

/*
contributor.go implements the Contributor Map: addresses are mapped
to ordered contributor lists, backed by a slice kept sorted by the
descending-length comparator so iteration visits longer (more
specific) prefixes first. Contributors may be registered explicitly
at an address, or declaratively via their own Addresses() method.
*/

// Contributor is a plug-in bound to one or more address prefixes,
// invoked ahead of the default handler for targets under that prefix.
type Contributor interface {
	// Addresses returns the address prefixes this contributor claims.
	Addresses() []Segment
	// ExecuteOnAddress is invoked with the contributor trail built so
	// far, the target relative to the matched prefix, the original
	// absolute target, the operation, and the in-flight result. A
	// true return short-circuits further contributor/handler dispatch
	// for this target.
	ExecuteOnAddress(trail []Segment, relative, absolute Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
	// ExecuteOnStatement is the statement-path symmetric counterpart.
	ExecuteOnStatement(trail []Segment, relative Statement, absolute Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (handled bool, err error)
}

type contributorEntry struct {
	key    Segment
	members []Contributor
}

// ContributorMap holds every registered contributor, keyed by the
// address prefix it was registered (or declared) at.
type ContributorMap struct {
	entries []*contributorEntry // kept sorted by CompareDescending(key)
}

// NewContributorMap returns an empty contributor map.
func NewContributorMap() *ContributorMap {
	return &ContributorMap{}
}

func (m *ContributorMap) find(key Segment) *contributorEntry {
	for _, e := range m.entries {
		if e.key.Equal(key) {
			return e
		}
	}
	return nil
}

// Register appends c to the contributor list at key, creating the
// entry if necessary and re-sorting the key list by descending
// length. If c implements Addresses() with a non-empty result, it is
// additionally registered at each of those addresses.
func (m *ContributorMap) Register(key Segment, c Contributor) {
	m.registerAt(key, c)
	for _, addr := range c.Addresses() {
		if !addr.Equal(key) {
			m.registerAt(addr, c)
		}
	}
}

func (m *ContributorMap) registerAt(key Segment, c Contributor) {
	if e := m.find(key); e != nil {
		e.members = append(e.members, c)
		return
	}
	m.entries = append(m.entries, &contributorEntry{key: key, members: []Contributor{c}})
	sort.SliceStable(m.entries, func(i, j int) bool {
		return CompareDescending(m.entries[i].key, m.entries[j].key) < 0
	})
}

// snapshot returns a copy of the current entry list, per Open
// Question (c): contributor iteration must not be invalidated by a
// contributor mutating the map mid-callback.
func (m *ContributorMap) snapshot() []*contributorEntry {
	out := make([]*contributorEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

/*
FindHigherContributorXri returns the first registered key K, visited
in descending-length order, such that addr starts with K -- the
longest (most specific) matching prefix.
*/
func (m *ContributorMap) FindHigherContributorXri(addr Segment) (Segment, bool) {
	for _, e := range m.snapshot() {
		if _, ok := StartsWith(addr, e.key, false, false); ok {
			return e.key, true
		}
	}
	return Segment{}, false
}

/*
FindLowerContributorXri returns the first registered key K such that
K starts with addr (addr is a strict prefix of, or equal to, K).
*/
func (m *ContributorMap) FindLowerContributorXri(addr Segment) (Segment, bool) {
	for _, e := range m.snapshot() {
		if _, ok := StartsWith(e.key, addr, false, false); ok {
			return e.key, true
		}
	}
	return Segment{}, false
}

// FindMatchingContributorXri performs an exact-key lookup.
func (m *ContributorMap) FindMatchingContributorXri(addr Segment) (Segment, bool) {
	if e := m.find(addr); e != nil {
		return e.key, true
	}
	return Segment{}, false
}

func (m *ContributorMap) membersAt(key Segment) []Contributor {
	if e := m.find(key); e != nil {
		out := make([]Contributor, len(e.members))
		copy(out, e.members)
		return out
	}
	return nil
}

/*
ExecuteContributorsAddress implements the address-path contributor
dispatch: find the next applicable prefix via FindHigherContributorXri,
compute the remainder (relative target with the matched prefix
removed from the front), append the matched prefix to trail, and
invoke every contributor registered at that prefix in insertion
order. The first handled=true return stops iteration. Contributor
push/pop of the execution context stack happens once per invoked
contributor, on every exit path.
*/
func (m *ContributorMap) ExecuteContributorsAddress(trail []Segment, relative, absolute Segment, op *Operation, result *MessageResult, ctx *ExecutionContext) (newTrail []Segment, handled bool, err error) {
	key, ok := m.FindHigherContributorXri(relative)
	if !ok {
		return trail, false, nil
	}
	remainder, _ := RemoveStartXri(relative, key, false, false)
	newTrail = append(append([]Segment(nil), trail...), key)

	for _, c := range m.membersAt(key) {
		ctx.PushContributor(c, key.String())
		h, e := c.ExecuteOnAddress(newTrail, remainder, absolute, op, result, ctx)
		ctx.PopContributor()
		if e != nil {
			return newTrail, false, e
		}
		if h {
			return newTrail, true, nil
		}
	}
	return newTrail, false, nil
}

/*
ExecuteContributorsStatement is the statement-path symmetric
counterpart. Per Open Question (b), the lookup key for a context-node
statement is subject concatenated with object; for relation and
literal statements it is the subject alone. This asymmetry is
intentional and preserved from the source behavior.
*/
func (m *ContributorMap) ExecuteContributorsStatement(trail []Segment, relative, absolute Statement, op *Operation, result *MessageResult, ctx *ExecutionContext) (newTrail []Segment, handled bool, err error) {
	var lookupKey Segment
	if relative.Kind == StatementContextNode {
		lookupKey = relative.Subject.Concat(relative.Object)
	} else {
		lookupKey = relative.Subject
	}

	key, ok := m.FindHigherContributorXri(lookupKey)
	if !ok {
		return trail, false, nil
	}
	newTrail = append(append([]Segment(nil), trail...), key)

	for _, c := range m.membersAt(key) {
		ctx.PushContributor(c, key.String())
		h, e := c.ExecuteOnStatement(newTrail, relative, absolute, op, result, ctx)
		ctx.PopContributor()
		if e != nil {
			return newTrail, false, e
		}
		if h {
			return newTrail, true, nil
		}
	}
	return newTrail, false, nil
}
