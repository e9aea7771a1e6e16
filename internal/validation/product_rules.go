package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages reported to API clients. Clients match on these strings.
const (
	MsgInvalidID           = "Id no valido"
	MsgNameRequired        = "El nombre del propducto no pudde ir vacion"
	MsgPriceNotNumeric     = "Valor no valido"
	MsgPriceRequired       = "El precio del propducto no pudde ir vacion"
	MsgPriceNotPositive    = "Precio no valido"
	MsgAvailabilityInvalid = "El valor para la disponibilidad no válido"
)

var (
	validate = validator.New()

	// Optional sign, no leading zeros.
	integerPattern = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)$`)
)

var (
	idRule = Rule{Field: "id", In: LocationParams, Check: isInteger, Message: MsgInvalidID}

	nameRules = []Rule{
		{Field: "name", In: LocationBody, Check: isNotEmpty, Message: MsgNameRequired},
	}

	// Each price rule is reported on its own, so a non-numeric price fails
	// both the numeric and the positivity checks.
	priceRules = []Rule{
		{Field: "price", In: LocationBody, Check: isNumeric, Message: MsgPriceNotNumeric},
		{Field: "price", In: LocationBody, Check: isNotEmpty, Message: MsgPriceRequired},
		{Field: "price", In: LocationBody, Check: isPositive, Message: MsgPriceNotPositive},
	}

	availabilityRule = Rule{Field: "availability", In: LocationBody, Check: isBoolean, Message: MsgAvailabilityInvalid}
)

// IDRules validates the :id path parameter only.
var IDRules = RuleSet{idRule}

// CreateRules validates the body of a product creation.
var CreateRules = concat(nameRules, priceRules)

// UpdateRules validates a full product update.
var UpdateRules = concat([]Rule{idRule}, nameRules, priceRules, []Rule{availabilityRule})

func concat(groups ...[]Rule) RuleSet {
	var rs RuleSet
	for _, g := range groups {
		rs = append(rs, g...)
	}
	return rs
}

// ParseID converts a path parameter that passed IDRules.
func ParseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimPrefix(raw, "+"), 10, 64)
}

func isInteger(value interface{}, present bool) bool {
	s, ok := value.(string)
	if !present || !ok || !integerPattern.MatchString(s) {
		return false
	}
	_, err := ParseID(s)
	return err == nil
}

func isNotEmpty(value interface{}, present bool) bool {
	s, ok := text(value, present)
	return ok && validate.Var(s, "required") == nil
}

func isNumeric(value interface{}, present bool) bool {
	s, ok := text(value, present)
	return ok && validate.Var(s, "numeric") == nil
}

func isPositive(value interface{}, present bool) bool {
	f, ok := number(value, present)
	return ok && validate.Var(f, "gt=0") == nil
}

func isBoolean(value interface{}, present bool) bool {
	_, ok := Bool(value, present)
	return ok
}

// text renders scalar JSON values the way a client typed them.
// Objects, arrays and null have no text form.
func text(value interface{}, present bool) (string, bool) {
	if !present {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// number reads a JSON number or a numeric string.
func number(value interface{}, present bool) (float64, bool) {
	if !present {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text returns the name of a body field that passed the not-empty rule.
func Text(value interface{}, present bool) string {
	s, _ := text(value, present)
	return s
}

// Number returns the value of a price that passed the price rules.
func Number(value interface{}, present bool) float64 {
	f, _ := number(value, present)
	return f
}

// Bool reads a JSON boolean, the strings "true", "false", "1", "0" or the numbers 1 and 0.
func Bool(value interface{}, present bool) (bool, bool) {
	if !present {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	case float64:
		switch v {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}
