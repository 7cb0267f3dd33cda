package algorithm

import (
	"fmt"
	"strings"
)

// entry binds one ID to its strategy.
type entry struct {
	id        ID
	name      string
	kind      Kind
	primality PrimalityFunc
	sieve     SieveFunc
}

// Registry is the name-to-algorithm table. Build it once with NewRegistry
// and pass it to whatever needs to resolve names; it is read-only after
// construction and safe for concurrent use.
type Registry struct {
	entries []entry // canonical order
	byName  map[string]int
	byID    map[ID]int
}

// NewRegistry returns a Registry holding every known algorithm.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]int),
		byID:   make(map[ID]int),
	}
	r.add(entry{id: TrialDivision, kind: KindPrimality, primality: IsPrimeTrialDivision})
	r.add(entry{id: TrialDivisionSqrt, kind: KindPrimality, primality: IsPrimeTrialDivisionSqrt})
	r.add(entry{id: TrialDivisionNewton, kind: KindPrimality, primality: IsPrimeTrialDivisionNewton})
	r.add(entry{id: MillerRabin, kind: KindPrimality, primality: IsPrimeMillerRabin})
	r.add(entry{id: AKS, kind: KindPrimality, primality: IsPrimeAKS})
	r.add(entry{id: SieveOfEratosthenes, kind: KindSieve, sieve: Sieve})
	return r
}

func (r *Registry) add(e entry) {
	e.name = e.id.String()
	r.byName[e.name] = len(r.entries)
	r.byID[e.id] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Resolve turns user-supplied names into IDs of the given kind.
//
// Each element of names may itself be a comma-separated list. Order of
// first appearance is kept and repeats are dropped. With no names at all,
// every algorithm of the kind is returned in canonical order. Any token
// that does not name an algorithm of the kind fails the whole call with
// an *UnknownAlgorithmError.
func (r *Registry) Resolve(kind Kind, names []string) ([]ID, error) {
	var tokens []string
	for _, n := range names {
		for _, tok := range strings.Split(n, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}

	if len(tokens) == 0 {
		var ids []ID
		for _, e := range r.entries {
			if e.kind == kind {
				ids = append(ids, e.id)
			}
		}
		return ids, nil
	}

	ids := make([]ID, 0, len(tokens))
	seen := make(map[ID]bool, len(tokens))
	for _, tok := range tokens {
		idx, ok := r.byName[strings.ToLower(tok)]
		if !ok || r.entries[idx].kind != kind {
			return nil, &UnknownAlgorithmError{Name: tok, Kind: kind}
		}
		id := r.entries[idx].id
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Names lists the canonical names of every algorithm of the kind.
func (r *Registry) Names(kind Kind) []string {
	var names []string
	for _, e := range r.entries {
		if e.kind == kind {
			names = append(names, e.name)
		}
	}
	return names
}

// Primality returns the primality strategy bound to id.
func (r *Registry) Primality(id ID) (PrimalityFunc, error) {
	idx, ok := r.byID[id]
	if !ok || r.entries[idx].kind != KindPrimality {
		return nil, &UnknownAlgorithmError{Name: id.String(), Kind: KindPrimality}
	}
	return r.entries[idx].primality, nil
}

// Sieve returns the sieve strategy bound to id.
func (r *Registry) Sieve(id ID) (SieveFunc, error) {
	idx, ok := r.byID[id]
	if !ok || r.entries[idx].kind != KindSieve {
		return nil, &UnknownAlgorithmError{Name: id.String(), Kind: KindSieve}
	}
	return r.entries[idx].sieve, nil
}

// Predicate returns the conjunction of the primality strategies in ids:
// a candidate passes only if every one of them accepts it. Strategies are
// looked up here, once, so the returned function does no table lookups.
func (r *Registry) Predicate(ids []ID) (PrimalityFunc, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty algorithm set", ErrUnknownAlgorithm)
	}
	funcs := make([]PrimalityFunc, 0, len(ids))
	for _, id := range ids {
		f, err := r.Primality(id)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, f)
	}
	if len(funcs) == 1 {
		return funcs[0], nil
	}
	return func(n uint64) bool {
		for _, f := range funcs {
			if !f(n) {
				return false
			}
		}
		return true
	}, nil
}
