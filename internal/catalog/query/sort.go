package query

import "errors"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ErrInvalidDirection is returned for anything other than "asc" or "desc".
var ErrInvalidDirection = errors.New("Ordenação inválida. Use 'asc' ou 'desc'.")

// ParseDirection accepts exactly "asc" or "desc".
func ParseDirection(value string) (Direction, error) {
	switch Direction(value) {
	case Asc, Desc:
		return Direction(value), nil
	default:
		return "", ErrInvalidDirection
	}
}
