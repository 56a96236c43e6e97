package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marton-art/proyecto-integrado.ignore/pkg/rut"
)

func TestComputeCheckDigit(t *testing.T) {
	cases := map[string]byte{
		"76000000": '0',
		"11111111": '1',
		"12345678": '5',
		"10000013": 'K',
		"5126663":  '3',
	}
	for body, want := range cases {
		got, err := rut.ComputeCheckDigit(body)
		require.NoError(t, err, body)
		assert.Equal(t, string(want), string(got), body)
	}
}

func TestValidate(t *testing.T) {
	for _, ok := range []string{"76000000-0", "76.000.000-0", "760000000", "10.000.013-k", " 12345678-5 "} {
		assert.NoError(t, rut.Validate(ok), ok)
	}
	for _, bad := range []string{"76000000-1", "", "1", "ABC-1", "1234567890-1"} {
		assert.Error(t, rut.Validate(bad), bad)
	}
}

func TestNormalizeYFormat(t *testing.T) {
	assert.Equal(t, "76000000-K", rut.Normalize(" 76.000.000-k "))
	assert.Equal(t, "76000000-0", rut.Format("760000000"))
	assert.Equal(t, "10000013-K", rut.Format("10.000.013-k"))
}
