package lib

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// TokenDecimals is the fixed fractional precision of the CPT token
const TokenDecimals = 18

var ErrInvalidAmount = errors.New("invalid token amount")

var tokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

// ParseTokenAmount converts a decimal CPT amount (e.g. "10.5") to the
// contract's fixed-point integer representation (10^18 scale)
func ParseTokenAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("empty string"))
	}
	if strings.HasPrefix(s, "-") {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("negative amount %q", s))
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("no digits in %q", s))
	}
	if len(frac) > TokenDecimals {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("%q exceeds %d fractional digits", s, TokenDecimals))
	}
	if whole == "" {
		whole = "0"
	}

	wholePart, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, WrapError(ErrInvalidAmount, fmt.Errorf("malformed amount %q", s))
	}

	fracPart := big.NewInt(0)
	if frac != "" {
		fracPart, ok = new(big.Int).SetString(frac, 10)
		if !ok || fracPart.Sign() < 0 {
			return nil, WrapError(ErrInvalidAmount, fmt.Errorf("malformed amount %q", s))
		}
		// scale up the fractional part to the full 18 digits
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(TokenDecimals-len(frac))), nil)
		fracPart.Mul(fracPart, scale)
	}

	return wholePart.Mul(wholePart, tokenUnit).Add(wholePart, fracPart), nil
}

// FormatTokenAmount converts a fixed-point integer back to its decimal
// string representation, trimming trailing fractional zeroes
func FormatTokenAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}

	quo, rem := new(big.Int).QuoRem(v, tokenUnit, new(big.Int))
	if rem.Sign() == 0 {
		return quo.String()
	}

	frac := strings.TrimRight(fmt.Sprintf("%018s", rem.String()), "0")
	return quo.String() + "." + frac
}
