package matches

import (
	"fmt"
	"time"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Match es el swipe de un usuario sobre un par de mascotas.
// El par se guarda normalizado: PetID1 < PetID2.
type Match struct {
	ID             int64
	UserID         int64
	PetID1         int64
	PetID2         int64
	SwipeDirection Direction
	IsMatch        bool
	CreatedAt      time.Time
}

// Pair es el par no ordenado de mascotas, siempre (min, max).
type Pair struct {
	A int64
	B int64
}

// NewPair normaliza el orden para que swipear A->B o B->A caiga en la misma clave.
func NewPair(x, y int64) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Other devuelve la otra mascota del par.
func (p Pair) Other(petID int64) int64 {
	if p.A == petID {
		return p.B
	}
	return p.A
}

// Key es la clave compuesta "{userID}-{a}-{b}" usada por el store in-memory.
func (p Pair) Key(userID int64) string {
	return fmt.Sprintf("%d-%d-%d", userID, p.A, p.B)
}

func (m Match) Pair() Pair { return Pair{A: m.PetID1, B: m.PetID2} }

// Normalized devuelve m con el par ordenado.
func (m Match) Normalized() Match {
	p := NewPair(m.PetID1, m.PetID2)
	m.PetID1, m.PetID2 = p.A, p.B
	return m
}
