package lib

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid ethereum address")

// ValidateAddr checks the address is well-formed before any network call is
// attempted
func ValidateAddr(addr string) (common.Address, error) {
	if !common.IsHexAddress(addr) {
		return common.Address{}, WrapError(ErrInvalidAddress, fmt.Errorf("%q", addr))
	}
	return common.HexToAddress(addr), nil
}

func GetRandomAddr() common.Address {
	return common.BigToAddress(big.NewInt(rand.Int63()))
}
