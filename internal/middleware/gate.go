package middleware

import (
	"tienda/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// MsgInvalidJSON is reported when a JSON request body cannot be decoded.
const MsgInvalidJSON = "JSON no valido"

const inputKey = "validatedInput"

// fiberInput adapts a Fiber request to validation.Input.
type fiberInput struct {
	c    *fiber.Ctx
	body map[string]interface{}
}

func (in *fiberInput) Param(name string) string {
	return in.c.Params(name)
}

func (in *fiberInput) BodyField(name string) (interface{}, bool) {
	v, ok := in.body[name]
	return v, ok
}

// Gate is a Fiber middleware that evaluates rules against the request and
// answers 400 with every violation, or hands over to the next handler.
func Gate(rules validation.RuleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := &fiberInput{c: c, body: map[string]interface{}{}}

		// Bodies that are not JSON are read as empty, like a form post.
		if rules.ReadsBody() && len(c.Body()) > 0 && c.Is("json") {
			if err := c.BodyParser(&input.body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"errors": []validation.Violation{{
						Type:     "body",
						Msg:      MsgInvalidJSON,
						Location: validation.LocationBody,
					}},
				})
			}
		}

		if violations := rules.Evaluate(input); len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": violations,
			})
		}

		c.Locals(inputKey, input)
		return c.Next()
	}
}

// ValidatedInput returns the input that passed the Gate for this request.
func ValidatedInput(c *fiber.Ctx) validation.Input {
	if in, ok := c.Locals(inputKey).(validation.Input); ok {
		return in
	}
	return &fiberInput{c: c, body: map[string]interface{}{}}
}
