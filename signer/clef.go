package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/external"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// Clef forwards requests to an external clef instance, which asks its own
// operator for the final approval.
type Clef struct {
	ext *external.ExternalSigner
}

func NewClef(endpoint string) (*Clef, error) {
	if endpoint == "" {
		return nil, ErrNoSigner
	}

	ext, err := external.NewExternalSigner(endpoint)
	if err != nil {
		log.Error().Err(err).Msgf("NewClef: cannot connect to %s", endpoint)
		return nil, err
	}

	return &Clef{ext: ext}, nil
}

func (c *Clef) SignPersonal(ctx context.Context, from common.Address, data []byte) ([]byte, error) {
	return c.call(ctx, func() ([]byte, error) {
		return c.ext.SignText(accounts.Account{Address: from}, data)
	})
}

func (c *Clef) SignTyped(ctx context.Context, from common.Address, typedData []byte) ([]byte, error) {
	return c.call(ctx, func() ([]byte, error) {
		return c.ext.SignData(accounts.Account{Address: from}, accounts.MimetypeTypedData, typedData)
	})
}

// SignLegacy always fails: clef never signs a bare hash, and a prefixed
// signature would not verify against the raw payload.
func (c *Clef) SignLegacy(_ context.Context, _ common.Address, _ []byte) ([]byte, error) {
	return nil, ErrUnsupported
}

type sigResult struct {
	sig []byte
	err error
}

// the external signer api has no context, so the wait is cut short instead
func (c *Clef) call(ctx context.Context, f func() ([]byte, error)) ([]byte, error) {
	ch := make(chan sigResult, 1)
	go func() {
		sig, err := f()
		ch <- sigResult{sig, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return normalizeV(r.sig)
	}
}
