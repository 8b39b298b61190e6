package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// EtherDecimals is the number of decimals of a native currency unit
var EtherDecimals = len(big.NewInt(params.Ether).String()) - 1

// FormatEther renders a wei amount as a decimal ether amount, e.g. 1000000000000000000 -> "1.0".
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// FormatUnits renders value scaled down by 10^decimals. The fractional part keeps
// at least one digit and drops trailing zeros.
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		value = new(big.Int)
	}

	negative := value.Sign() < 0
	abs := new(big.Int).Abs(value)

	digits := abs.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	fraction := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fraction == "" {
		fraction = "0"
	}

	result := whole + "." + fraction
	if negative {
		result = "-" + result
	}
	return result
}
