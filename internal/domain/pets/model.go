package pets

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("pet not found")

// Type define los tipos de animal soportados.
// @Enum DOG, CAT
type Type string

const (
	TypeDog Type = "DOG"
	TypeCat Type = "CAT"
)

// BirthDateLayout es el formato literal DD/MM/YYYY con el que se guarda la fecha.
const BirthDateLayout = "02/01/2006"

// Pet es un registro de mascota. OwnerName/OwnerPhone son copias tomadas al
// escribir; no se sincronizan con el usuario.
type Pet struct {
	ID          int64
	OwnerUserID int64

	Name  string
	Type  Type
	Breed string

	OwnerName  string
	OwnerPhone string

	// BirthDate se guarda tal cual llegó (DD/MM/YYYY), sin chequeo de calendario.
	BirthDate string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) OwnedBy(userID int64) bool {
	return userID > 0 && p.OwnerUserID == userID
}

// BirthTime parsea BirthDate; false si no es una fecha real (p.ej. 31/02/2024).
func (p Pet) BirthTime() (time.Time, bool) {
	t, err := time.Parse(BirthDateLayout, p.BirthDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Age describe la edad a la fecha now: "N years", o "N months" si es menor de un año.
// Vacío si la fecha no parsea o está en el futuro.
func (p Pet) Age(now time.Time) string {
	born, ok := p.BirthTime()
	if !ok {
		return ""
	}
	now = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if born.After(now) {
		return ""
	}

	months := (now.Year()-born.Year())*12 + int(now.Month()) - int(born.Month())
	if now.Day() < born.Day() {
		months--
	}

	if years := months / 12; years >= 1 {
		return plural(years, "year")
	}
	return plural(months, "month")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
