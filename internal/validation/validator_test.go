package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldSet map[string]bool

func (f fieldSet) Has(source string) bool { return f[source] }

var known = fieldSet{"識別番号": true, "氏名": true, "フリガナ": true}

func TestValidateHeader(t *testing.T) {
	require.NoError(t, ValidateHeader([]string{"氏名", "識別番号"}, known))
	require.NoError(t, ValidateHeader(nil, known))

	err := ValidateHeader([]string{"氏名", "不明項目", "別の不明"}, known)
	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "不明項目", unknown.Field)
	assert.Equal(t, 2, unknown.Column)
	assert.Contains(t, err.Error(), `"不明項目"`)
}

func TestValidateHeaderAll(t *testing.T) {
	require.NoError(t, ValidateHeaderAll([]string{"フリガナ"}, known))

	err := ValidateHeaderAll([]string{"不明A", "氏名", "不明B"}, known)
	var all *UnknownFieldsError
	require.True(t, errors.As(err, &all))
	require.Len(t, all.Fields, 2)
	assert.Equal(t, "不明A", all.Fields[0].Field)
	assert.Equal(t, 3, all.Fields[1].Column)
	assert.EqualError(t, err, `2 unknown field(s): "不明A", "不明B"`)

	var one *UnknownFieldError
	require.True(t, errors.As(err, &one))
	assert.Equal(t, "不明A", one.Field)
}
