package validation_test

import (
	"testing"

	"tienda/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(fields map[string]interface{}) validation.MapInput {
	return validation.MapInput{Body: fields}
}

func withID(id string, fields map[string]interface{}) validation.MapInput {
	return validation.MapInput{Params: map[string]string{"id": id}, Body: fields}
}

func messages(violations []validation.Violation) []string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Msg)
	}
	return msgs
}

func TestCreateRules_EmptyBodyReportsFourViolations(t *testing.T) {
	violations := validation.CreateRules.Evaluate(body(map[string]interface{}{}))

	assert.Equal(t, []string{
		validation.MsgNameRequired,
		validation.MsgPriceNotNumeric,
		validation.MsgPriceRequired,
		validation.MsgPriceNotPositive,
	}, messages(violations))
	for _, v := range violations {
		assert.Equal(t, validation.LocationBody, v.Location)
		assert.Nil(t, v.Value)
	}
}

func TestCreateRules_Price(t *testing.T) {
	tests := []struct {
		name  string
		price interface{}
		want  []string
	}{
		{"zero", 0.0, []string{validation.MsgPriceNotPositive}},
		{"negative", -300.0, []string{validation.MsgPriceNotPositive}},
		{"text", "Hola", []string{validation.MsgPriceNotNumeric, validation.MsgPriceNotPositive}},
		{"empty string", "", []string{validation.MsgPriceNotNumeric, validation.MsgPriceRequired, validation.MsgPriceNotPositive}},
		{"null", nil, []string{validation.MsgPriceNotNumeric, validation.MsgPriceRequired, validation.MsgPriceNotPositive}},
		{"boolean", true, []string{validation.MsgPriceNotNumeric, validation.MsgPriceNotPositive}},
		{"numeric string", "600", nil},
		{"decimal", 19.99, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := validation.CreateRules.Evaluate(body(map[string]interface{}{
				"name":  "Monitor Curvo - Testing",
				"price": tt.price,
			}))
			if tt.want == nil {
				assert.Empty(t, violations)
				return
			}
			assert.Equal(t, tt.want, messages(violations))
		})
	}
}

func TestCreateRules_Name(t *testing.T) {
	assert.Len(t, validation.CreateRules.Evaluate(body(map[string]interface{}{"name": "", "price": 10.0})), 1)
	assert.Len(t, validation.CreateRules.Evaluate(body(map[string]interface{}{"name": nil, "price": 10.0})), 1)
	assert.Len(t, validation.CreateRules.Evaluate(body(map[string]interface{}{"name": map[string]interface{}{}, "price": 10.0})), 1)
	assert.Empty(t, validation.CreateRules.Evaluate(body(map[string]interface{}{"name": "PS5 - Testing", "price": 600.0})))
}

func TestCreateRules_ViolationCarriesValue(t *testing.T) {
	violations := validation.CreateRules.Evaluate(body(map[string]interface{}{"name": "Test", "price": "Hola"}))
	require.NotEmpty(t, violations)
	assert.Equal(t, "Hola", violations[0].Value)
	assert.Equal(t, "price", violations[0].Path)
	assert.Equal(t, "field", violations[0].Type)
}

func TestIDRules(t *testing.T) {
	valid := []string{"1", "2000", "0", "-5", "+7"}
	for _, id := range valid {
		assert.Empty(t, validation.IDRules.Evaluate(withID(id, nil)), id)
	}

	invalid := []string{"not-valid-url", "Hob", "1.5", "01", "1e3", "99999999999999999999"}
	for _, id := range invalid {
		violations := validation.IDRules.Evaluate(withID(id, nil))
		require.Len(t, violations, 1, id)
		assert.Equal(t, validation.MsgInvalidID, violations[0].Msg)
		assert.Equal(t, validation.LocationParams, violations[0].Location)
	}
}

func TestUpdateRules_EmptyBodyReportsFiveViolations(t *testing.T) {
	violations := validation.UpdateRules.Evaluate(withID("1", map[string]interface{}{}))
	assert.Equal(t, []string{
		validation.MsgNameRequired,
		validation.MsgPriceNotNumeric,
		validation.MsgPriceRequired,
		validation.MsgPriceNotPositive,
		validation.MsgAvailabilityInvalid,
	}, messages(violations))
}

func TestUpdateRules_InvalidIDWithValidBody(t *testing.T) {
	violations := validation.UpdateRules.Evaluate(withID("not-valid-url", map[string]interface{}{
		"name": "Test", "price": 3300.0, "availability": true,
	}))
	require.Len(t, violations, 1)
	assert.Equal(t, validation.MsgInvalidID, violations[0].Msg)
}

func TestUpdateRules_NegativePrice(t *testing.T) {
	violations := validation.UpdateRules.Evaluate(withID("1", map[string]interface{}{
		"name": "Test", "price": -300.0, "availability": true,
	}))
	require.Len(t, violations, 1)
	assert.Equal(t, validation.MsgPriceNotPositive, violations[0].Msg)
}

func TestUpdateRules_Availability(t *testing.T) {
	accepted := []interface{}{true, false, "true", "false", "1", "0", 1.0, 0.0}
	for _, v := range accepted {
		violations := validation.UpdateRules.Evaluate(withID("1", map[string]interface{}{
			"name": "Test", "price": 300.0, "availability": v,
		}))
		assert.Empty(t, violations, "%v", v)
	}

	rejected := []interface{}{"yes", 2.0, nil, []interface{}{true}}
	for _, v := range rejected {
		violations := validation.UpdateRules.Evaluate(withID("1", map[string]interface{}{
			"name": "Test", "price": 300.0, "availability": v,
		}))
		require.Len(t, violations, 1, "%v", v)
		assert.Equal(t, validation.MsgAvailabilityInvalid, violations[0].Msg)
	}
}

func TestRuleSet_ReadsBody(t *testing.T) {
	assert.False(t, validation.IDRules.ReadsBody())
	assert.True(t, validation.CreateRules.ReadsBody())
	assert.True(t, validation.UpdateRules.ReadsBody())
}

func TestCoercion(t *testing.T) {
	assert.Equal(t, "PS5", validation.Text("PS5", true))
	assert.Equal(t, "42", validation.Text(42.0, true))
	assert.Equal(t, 600.0, validation.Number("600", true))
	assert.Equal(t, 19.5, validation.Number(19.5, true))

	b, ok := validation.Bool("0", true)
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = validation.Bool(true, false)
	assert.False(t, ok)

	id, err := validation.ParseID("+7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
