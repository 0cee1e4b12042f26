package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/julianrc/panaderia-api/internal/application/dto"
)

var validate = validator.New()

// parseBody parsea el JSON del request y valida los tags `validate` del DTO.
// Si falla, escribe la respuesta de error y devuelve false.
func parseBody(c *fiber.Ctx, out any) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	return checkStruct(c, out)
}

// checkStruct valida los tags del struct; escribe 400 con el primer campo
// inválido si no pasa.
func checkStruct(c *fiber.Ctx, in any) bool {
	err := validate.Struct(in)
	if err == nil {
		return true
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		ve := vErrs[0]
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: validationMessage(ve),
			Field:   ve.Field(),
		})
		return false
	}
	_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	return false
}

func validationMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "el campo es obligatorio"
	case "email":
		return "email inválido"
	case "uuid4":
		return "debe ser un UUID válido"
	case "min":
		return "valor por debajo del mínimo (" + ve.Param() + ")"
	case "max":
		return "valor por encima del máximo (" + ve.Param() + ")"
	case "oneof":
		return "valor fuera del conjunto permitido: " + ve.Param()
	}
	return "valor inválido (" + ve.Tag() + ")"
}
