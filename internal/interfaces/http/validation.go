package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/esferaordo/ordo-api/internal/application/dto"
	"github.com/esferaordo/ordo-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según el tag json (o query) en los detalles del error
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y valida el struct.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("INVALID_BODY", "cuerpo inválido", nil)
	}
	return validateStruct(out)
}

// bindQuery parsea los query params y valida el struct.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return badRequest("INVALID_QUERY", "parámetros inválidos", nil)
	}
	return validateStruct(out)
}

func validateStruct(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return badRequest("VALIDATION", "datos inválidos", nil)
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{Field: e.Field(), Message: validationMessage(e)})
	}
	return badRequest("VALIDATION", details[0].Field+": "+details[0].Message, details)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "Email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "Deve ter no mínimo " + e.Param() + " caracteres"
		}
		return "Deve ser no mínimo " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Deve ter no máximo " + e.Param() + " caracteres"
		}
		return "Deve ser no máximo " + e.Param()
	case "eqfield":
		return "As senhas não coincidem"
	case "uuid":
		return "UUID inválido"
	case "oneof":
		return "Deve ser um de: " + e.Param()
	case "gte":
		return "Deve ser maior ou igual a " + e.Param()
	case "lte":
		return "Deve ser menor ou igual a " + e.Param()
	default:
		return "Valor inválido"
	}
}

// pathID parámetro de ruta que identifica una fila; un valor que no es UUID no existe.
func pathID(c *fiber.Ctx, key string) (string, error) {
	id := c.Params(key)
	if uuid.Validate(id) != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}

// queryID filtro opcional por id; vacío = nil.
func queryID(c *fiber.Ctx, key string) (*string, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	if uuid.Validate(v) != nil {
		return nil, badRequest("VALIDATION", key+": deve ser um UUID válido",
			[]dto.ValidationDetail{{Field: key, Message: "deve ser um UUID válido"}})
	}
	return &v, nil
}
