package eth

import (
	"context"
	"math/big"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
)

type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// BalancePoller keeps the account balances in the store fresh.
type BalancePoller struct {
	client BalanceReader
	store  *cmn.Store
	period time.Duration
}

func Dial(url string) (*ethclient.Client, error) {
	client, err := ethclient.Dial(url)
	if err != nil {
		log.Error().Err(err).Msgf("eth: cannot dial %s", url)
		return nil, err
	}
	return client, nil
}

func NewBalancePoller(client BalanceReader, store *cmn.Store, period time.Duration) *BalancePoller {
	if period <= 0 {
		period = 30 * time.Second
	}
	return &BalancePoller{client: client, store: store, period: period}
}

// Poll reads every account once. Accounts that fail keep their old balance.
func (p *BalancePoller) Poll(ctx context.Context) error {
	st := p.store.Snapshot()

	balances := make(map[common.Address]string, len(st.Accounts))
	var lastErr error

	for _, a := range st.Accounts {
		b, err := p.client.BalanceAt(ctx, a.Address, nil)
		if err != nil {
			log.Error().Err(err).Msgf("eth: cannot get balance of %s", a.Address.Hex())
			lastErr = err
			continue
		}
		balances[a.Address] = hexutil.EncodeBig(b)
	}

	if len(balances) > 0 {
		p.store.Update(func(st *cmn.State) {
			for i := range st.Accounts {
				if b, ok := balances[st.Accounts[i].Address]; ok {
					st.Accounts[i].Balance = b
				}
			}
		})
	}

	return lastErr
}

func (p *BalancePoller) Run(ctx context.Context) {
	p.Poll(ctx)

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}
