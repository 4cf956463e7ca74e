package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPair_IsOrderIndependent(t *testing.T) {
	assert.Equal(t, NewPair(3, 9), NewPair(9, 3))
	assert.Equal(t, Pair{A: 3, B: 9}, NewPair(9, 3))
	assert.Equal(t, NewPair(3, 9).Key(1), NewPair(9, 3).Key(1))
	assert.Equal(t, "1-3-9", NewPair(9, 3).Key(1))
}

func TestPair_Other(t *testing.T) {
	p := NewPair(4, 2)
	assert.Equal(t, int64(4), p.Other(2))
	assert.Equal(t, int64(2), p.Other(4))
}

func TestMatch_Normalized(t *testing.T) {
	m := Match{PetID1: 10, PetID2: 5}.Normalized()
	assert.Equal(t, int64(5), m.PetID1)
	assert.Equal(t, int64(10), m.PetID2)
}
