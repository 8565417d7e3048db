package cmn

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const WEI_DECIMALS = 18
const BALANCE_DECIMALS = 6

// FormatBalance converts a hex wei amount into a decimal string of the base
// asset, multiplied by rate (nil means 1) and rounded half-down to
// BALANCE_DECIMALS places. An empty balance is "0".
func FormatBalance(hexWei string, rate *float64) (string, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(hexWei), "0x"), "0X")
	if hexWei == "" {
		return "0", nil
	}

	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return "", fmt.Errorf("invalid hex balance: %q", hexWei)
	}

	d := decimal.NewFromBigInt(v, -WEI_DECIMALS)
	if rate != nil {
		d = d.Mul(decimal.NewFromFloat(*rate))
	}

	return RoundHalfDown(d, BALANCE_DECIMALS).String(), nil
}

func RoundHalfDown(d decimal.Decimal, places int32) decimal.Decimal {
	t := d.Truncate(places)
	half := decimal.New(5, -(places + 1))
	if d.Sub(t).Abs().GreaterThan(half) {
		return d.Round(places)
	}
	return t
}
