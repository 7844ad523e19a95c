package validation_test

import (
	"testing"

	"products-api/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   string
		want  bool
	}{
		{"int digits", "42", validation.TagIsInt, true},
		{"int signed", "-7", validation.TagIsInt, true},
		{"int rejects words", "not-valid-ID", validation.TagIsInt, false},
		{"int rejects decimals", "1.5", validation.TagIsInt, false},
		{"notempty missing", nil, validation.TagNotEmpty, false},
		{"notempty empty string", "", validation.TagNotEmpty, false},
		{"notempty zero", 0.0, validation.TagNotEmpty, true},
		{"numeric number", 300.0, validation.TagIsNumeric, true},
		{"numeric string", "12.50", validation.TagIsNumeric, true},
		{"numeric negative", -300.0, validation.TagIsNumeric, true},
		{"numeric missing", nil, validation.TagIsNumeric, false},
		{"numeric word", "hola", validation.TagIsNumeric, false},
		{"numeric bool", true, validation.TagIsNumeric, false},
		{"numeric large exponent", 1e21, validation.TagIsNumeric, false},
		{"numeric small exponent", 1e-7, validation.TagIsNumeric, false},
		{"numeric below exponent range", 1e20, validation.TagIsNumeric, true},
		{"int exponent", 1e21, validation.TagIsInt, false},
		{"positive number", 100.0, validation.TagPositive, true},
		{"positive numeric string", "5", validation.TagPositive, true},
		{"positive zero", 0.0, validation.TagPositive, false},
		{"positive negative", -300.0, validation.TagPositive, false},
		{"positive missing", nil, validation.TagPositive, false},
		{"positive word", "hola", validation.TagPositive, false},
		{"boolean true", true, validation.TagIsBoolean, true},
		{"boolean false", false, validation.TagIsBoolean, true},
		{"boolean string", "0", validation.TagIsBoolean, true},
		{"boolean word", "yes", validation.TagIsBoolean, false},
		{"boolean missing", nil, validation.TagIsBoolean, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.Check(tt.value, tt.tag))
		})
	}
}

func TestCoercion(t *testing.T) {
	assert.Equal(t, "300", validation.StringOf(300.0))
	assert.Equal(t, "0.5", validation.StringOf(0.5))
	assert.Equal(t, "", validation.StringOf(nil))
	assert.Equal(t, "1e+21", validation.StringOf(1e21))
	assert.Equal(t, "-1.5e+22", validation.StringOf(-1.5e22))
	assert.Equal(t, "1e-7", validation.StringOf(1e-7))
	assert.Equal(t, "0.000001", validation.StringOf(0.000001))
	assert.Equal(t, "100000000000000000000", validation.StringOf(1e20))
	assert.Equal(t, "0", validation.StringOf(0.0))

	n, ok := validation.NumberOf("  12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = validation.NumberOf(map[string]any{})
	assert.False(t, ok)

	b, ok := validation.BoolOf("false")
	assert.True(t, ok)
	assert.False(t, b)
}

type limitedProduct struct {
	Name  string  `json:"name" validate:"max=5"`
	Price float64 `json:"price" validate:"gte=0.01,lte=100"`
}

func TestStruct(t *testing.T) {
	messages := map[string]string{"price": "price out of range"}

	errs, err := validation.Struct(limitedProduct{Name: "Mouse", Price: 10}, validation.LocationBody, messages)
	assert.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = validation.Struct(limitedProduct{Name: "Teclado", Price: 0.001}, validation.LocationBody, messages)
	assert.NoError(t, err)
	assert.Len(t, errs, 2)

	byPath := map[string]validation.FieldError{}
	for _, e := range errs {
		byPath[e.Path] = e
	}
	assert.Equal(t, "price out of range", byPath["price"].Msg)
	assert.Equal(t, 0.001, byPath["price"].Value)
	assert.Equal(t, validation.LocationBody, byPath["price"].Location)
	assert.Equal(t, "field", byPath["name"].Type)
	assert.Equal(t, "Teclado", byPath["name"].Value)
	assert.NotEmpty(t, byPath["name"].Msg)

	_, err = validation.Struct("not a struct", validation.LocationBody, messages)
	assert.Error(t, err)
}
