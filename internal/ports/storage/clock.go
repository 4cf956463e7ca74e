package storage

import "time"

// Timestamp normaliza un instante a UTC con precisión de microsegundos,
// la misma que persiste Postgres. Así ambos backends devuelven valores iguales.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Now es el reloj por defecto de los stores.
func Now() time.Time { return Timestamp(time.Now()) }
