package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/drip-capital/drippay/constants"
)

func FormatWeiAmount(amount *big.Int) string {
	if amount == nil || amount.Sign() == 0 {
		return ""
	}
	return WeiToEthS(amount)
}

func WeiToEthS(amount *big.Int) string {
	if amount == nil || amount.Sign() == 0 {
		return ""
	}
	eth := new(big.Rat).SetFrac(amount, big.NewInt(constants.WEI_FACTOR))
	return fmt.Sprintf("%s ETH", strings.TrimRight(strings.TrimRight(eth.FloatString(18), "0"), "."))
}

func GweiToWei(gwei int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(gwei), big.NewInt(constants.GWEI_FACTOR))
}

func ShortenAddress(addr string) string {
	total := len(addr)
	if total <= 13 {
		return addr
	}
	return fmt.Sprintf("%s...%s", addr[:6], addr[total-4:])
}
