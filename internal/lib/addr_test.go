package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddr(t *testing.T) {
	addr, err := ValidateAddr("0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199")
	require.NoError(t, err)
	assert.Equal(t, "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199", addr.Hex())
}

func TestValidateAddrMalformed(t *testing.T) {
	for _, in := range []string{"", "0x123", "not-an-address", "0xZZ26f6940E2eb28930eFb4CeF49B2d1F2C9C1199"} {
		_, err := ValidateAddr(in)
		assert.ErrorIs(t, err, ErrInvalidAddress, in)
	}
}
