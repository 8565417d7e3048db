package signer

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var ErrNoSigner = errors.New("no signer configured")
var ErrBadSignature = errors.New("bad signature length")
var ErrUnsupported = errors.New("eth_sign is not supported by the signer")

// Signer produces 65 byte [R || S || V] signatures with V in 27/28.
type Signer interface {
	SignPersonal(ctx context.Context, from common.Address, data []byte) ([]byte, error)
	SignTyped(ctx context.Context, from common.Address, typedData []byte) ([]byte, error)
	SignLegacy(ctx context.Context, from common.Address, data []byte) ([]byte, error)
}

func normalizeV(sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, ErrBadSignature
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return sig, nil
}
