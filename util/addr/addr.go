// Package addr normalizes caller-supplied chain addresses. Every address
// stored or compared by the ledger goes through Normalize first, so that
// "0xAbC..." and "0xabc..." never produce two distinct rows.
package addr

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalid = errors.New("invalid address")

// Normalize validates s as a hex chain address and returns its EIP-55
// checksummed form.
func Normalize(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", ErrInvalid
	}
	return common.HexToAddress(s).Hex(), nil
}

func IsValid(s string) bool {
	return common.IsHexAddress(s)
}
