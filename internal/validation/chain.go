package validation

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const (
	localsErrors = "validation.errors"
	localsBody   = "validation.body"
)

// Chain is an ordered list of rules evaluated eagerly against one request.
type Chain struct {
	rules    []Rule
	needBody bool
}

// NewChain returns a chain that evaluates rules in the given order.
func NewChain(rules ...Rule) *Chain {
	c := &Chain{rules: rules}
	for _, r := range rules {
		if r.Location == LocationBody {
			c.needBody = true
		}
	}
	return c
}

// Run evaluates every rule, never stopping at the first failure, and appends
// the failures to the request's accumulated errors.
func (ch *Chain) Run(c *fiber.Ctx) error {
	var body map[string]any
	if ch.needBody {
		var err error
		if body, err = ParsedBody(c); err != nil {
			return err
		}
	}

	errs := Errors(c)
	for _, r := range ch.rules {
		var (
			value   any
			present bool
		)
		switch r.Location {
		case LocationParams:
			value = ParamValue(c, r.Field)
			present = true
		case LocationBody:
			value, present = body[r.Field]
		}

		if Check(value, r.Tag) {
			continue
		}
		fe := FieldError{
			Type:     "field",
			Msg:      r.Message,
			Path:     r.Field,
			Location: r.Location,
		}
		if present {
			fe.Value = value
		}
		errs = append(errs, fe)
	}
	c.Locals(localsErrors, errs)
	return nil
}

// Handler wraps Run as a fiber middleware.
func (ch *Chain) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := ch.Run(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// ParamValue returns the percent-decoded route parameter. A value that does
// not decode is returned as sent.
func ParamValue(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Errors returns the failures accumulated on the request so far.
func Errors(c *fiber.Ctx) []FieldError {
	errs, _ := c.Locals(localsErrors).([]FieldError)
	return errs
}

// ParsedBody returns the request's JSON object, decoding it on first use. An empty
// or non-JSON body reads as an empty object.
func ParsedBody(c *fiber.Ctx) (map[string]any, error) {
	if body, ok := c.Locals(localsBody).(map[string]any); ok {
		return body, nil
	}

	body := map[string]any{}
	if len(c.Body()) > 0 && c.Is("json") {
		var decoded any
		if err := c.App().Config().JSONDecoder(c.Body(), &decoded); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
		}
		if obj, ok := decoded.(map[string]any); ok {
			body = obj
		}
	}
	c.Locals(localsBody, body)
	return body, nil
}
