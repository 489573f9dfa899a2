package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida del validador de structs para los bodies.
var validate = validator.New()

// validationMessage arma un mensaje legible a partir del primer error de
// validación ("records[0].quantity: falla la regla gt").
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("%s: falla la regla %s", fieldPath(fe.Namespace()), fe.Tag())
}

// fieldPath convierte el namespace del validador al estilo del contrato de
// cable: quita el nombre del struct raíz y pasa a minúsculas.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
