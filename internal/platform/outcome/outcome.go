// Package outcome clasifica el resultado de una operación de servicio
// para que la capa HTTP elija el status sin inspeccionar mensajes.
package outcome

import "net/http"

type Kind int

const (
	OK Kind = iota
	Created
	Invalid
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	Internal
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Created:
		return "created"
	case Invalid:
		return "invalid"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case OK:
		return http.StatusOK
	case Created:
		return http.StatusCreated
	case Invalid:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
