package algorithm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKeepsInputOrder(t *testing.T) {
	reg := NewRegistry()

	ids, err := reg.Resolve(KindPrimality, []string{"miller-rabin,trial-division"})
	require.NoError(t, err)
	assert.Equal(t, []ID{MillerRabin, TrialDivision}, ids)
}

func TestResolveUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(KindPrimality, []string{"not-a-real-algo"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	var unknown *UnknownAlgorithmError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "not-a-real-algo", unknown.Name)
}

func TestResolveUnknownAmongKnown(t *testing.T) {
	reg := NewRegistry()

	ids, err := reg.Resolve(KindPrimality, []string{"aks", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Nil(t, ids, "no partial result on failure")
}

func TestResolveDefaults(t *testing.T) {
	reg := NewRegistry()

	ids, err := reg.Resolve(KindPrimality, nil)
	require.NoError(t, err)
	assert.Equal(t, []ID{TrialDivision, TrialDivisionSqrt, TrialDivisionNewton, MillerRabin, AKS}, ids)

	ids, err = reg.Resolve(KindSieve, []string{})
	require.NoError(t, err)
	assert.Equal(t, []ID{SieveOfEratosthenes}, ids)
}

func TestResolveKindMismatch(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve(KindSieve, []string{"miller-rabin"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = reg.Resolve(KindPrimality, []string{"sieve-of-eratosthenes"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestResolveDeduplicatesAndTrims(t *testing.T) {
	reg := NewRegistry()

	ids, err := reg.Resolve(KindPrimality, []string{" aks , Miller-Rabin", "aks"})
	require.NoError(t, err)
	assert.Equal(t, []ID{AKS, MillerRabin}, ids)
}

func TestNames(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, []string{
		"trial-division",
		"trial-division-sqrt",
		"trial-division-newton",
		"miller-rabin",
		"aks",
	}, reg.Names(KindPrimality))
	assert.Equal(t, []string{"sieve-of-eratosthenes"}, reg.Names(KindSieve))
}

func TestPredicateConjunction(t *testing.T) {
	reg := NewRegistry()

	pred, err := reg.Predicate([]ID{MillerRabin, TrialDivisionNewton})
	require.NoError(t, err)
	assert.True(t, pred(97))
	assert.False(t, pred(561))

	_, err = reg.Predicate(nil)
	assert.Error(t, err)

	_, err = reg.Predicate([]ID{SieveOfEratosthenes})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestSieveLookup(t *testing.T) {
	reg := NewRegistry()

	sieve, err := reg.Sieve(SieveOfEratosthenes)
	require.NoError(t, err)
	res, err := sieve(30)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), res.Count())

	_, err = reg.Sieve(AKS)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "trial-division-newton", TrialDivisionNewton.String())
	assert.Equal(t, "unknown", ID(99).String())
	assert.Equal(t, "sieve", KindSieve.String())
}
