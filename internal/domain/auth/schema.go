package auth

import (
	"softpet/internal/domain/users"
	"softpet/internal/validation"
)

type registerInput struct {
	Name     string `form:"name" validate:"min=2" msg:"name must be at least 2 characters"`
	Email    string `form:"email" validate:"email" msg:"invalid email"`
	Contact  string `form:"contact" validate:"min=5" msg:"contact must be at least 5 characters"`
	Password string `form:"password" validate:"min=6,maxbytes=72" msg:"password must be at least 6 characters" msg_maxbytes:"password must be at most 72 bytes"`
}

// loginInput no limita el largo: un password que no entra en bcrypt nunca
// coincide y responde como credenciales incorrectas.
type loginInput struct {
	Email    string `form:"email" validate:"email" msg:"invalid email"`
	Password string `form:"password" validate:"min=6" msg:"password must be at least 6 characters"`
}

func parseRegister(v *validation.Validator, p validation.Payload) (registerInput, *validation.FieldErrors) {
	var in registerInput
	if err := validation.Bind(p, &in); err != nil {
		return registerInput{}, validation.Single("form", MsgInvalidForm)
	}
	in.Email = users.NormalizeEmail(in.Email)
	if errs := v.Struct(&in); errs != nil {
		return registerInput{}, errs
	}
	return in, nil
}

func parseLogin(v *validation.Validator, p validation.Payload) (loginInput, *validation.FieldErrors) {
	var in loginInput
	if err := validation.Bind(p, &in); err != nil {
		return loginInput{}, validation.Single("form", MsgInvalidForm)
	}
	in.Email = users.NormalizeEmail(in.Email)
	if errs := v.Struct(&in); errs != nil {
		return loginInput{}, errs
	}
	return in, nil
}
