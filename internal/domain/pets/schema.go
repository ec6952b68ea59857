package pets

import (
	"strconv"

	"softpet/internal/validation"
)

// PetInput son los campos del formulario de alta/edición.
type PetInput struct {
	Name       string `form:"name" validate:"min=2" msg:"name must be at least 2 characters"`
	Type       string `form:"type" validate:"oneof=DOG CAT" msg:"select the animal type"`
	Breed      string `form:"breed" validate:"min=2" msg:"breed must be at least 2 characters"`
	OwnerName  string `form:"ownerName" validate:"min=2" msg:"owner name must be at least 2 characters"`
	OwnerPhone string `form:"ownerPhone" validate:"min=10" msg:"invalid phone number"`
	BirthDate  string `form:"birthDate" validate:"ddmmyyyy" msg:"invalid date (DD/MM/YYYY)"`
}

type updateInput struct {
	ID string `form:"id" validate:"required,number" msg:"pet id is required"`
	PetInput
}

func parseCreate(v *validation.Validator, p validation.Payload) (PetInput, *validation.FieldErrors) {
	var in PetInput
	if err := validation.Bind(p, &in); err != nil {
		return PetInput{}, validation.Single("form", MsgInvalidInput)
	}
	if errs := v.Struct(&in); errs != nil {
		return PetInput{}, errs
	}
	return in, nil
}

func parseUpdate(v *validation.Validator, p validation.Payload) (int64, PetInput, *validation.FieldErrors) {
	var in updateInput
	if err := validation.Bind(p, &in); err != nil {
		return 0, PetInput{}, validation.Single("form", MsgInvalidInput)
	}
	if errs := v.Struct(&in); errs != nil {
		return 0, PetInput{}, errs
	}
	id, err := strconv.ParseInt(in.ID, 10, 64)
	if err != nil {
		// "number" acepta dígitos que no entran en int64
		return 0, PetInput{}, nil
	}
	return id, in.PetInput, nil
}

// parseID: cualquier id no numérico o <= 0 se trata como inexistente.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
