package cmn

import (
	"strings"
	"sync"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// State is a read-only snapshot of what the screens need from the wallet.
type State struct {
	Accounts        []Account
	ConversionRate  *float64
	NativeCurrency  string
	Provider        Provider
	SubjectMetadata map[string]SubjectMetadata
	LedgerConnected bool
}

func (s *State) Clone() *State {
	c := *s

	c.Accounts = append([]Account(nil), s.Accounts...)

	if s.ConversionRate != nil {
		r := *s.ConversionRate
		c.ConversionRate = &r
	}

	c.SubjectMetadata = make(map[string]SubjectMetadata, len(s.SubjectMetadata))
	for k, v := range s.SubjectMetadata {
		c.SubjectMetadata[k] = v
	}

	return &c
}

func (s *State) GetAccount(a common.Address) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].Address == a {
			return &s.Accounts[i]
		}
	}
	return nil
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore(initial State) *Store {
	return &Store{state: *initial.Clone()}
}

func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Update applies fn under the write lock and announces the change on the bus.
func (s *Store) Update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()

	bus.Send("state", "changed", nil)
}

func (s *Store) SetBalance(a common.Address, hexBalance string) {
	s.Update(func(st *State) {
		if acc := st.GetAccount(a); acc != nil {
			acc.Balance = hexBalance
		}
	})
}

func (s *Store) SetLedgerConnected(connected bool) {
	s.mu.RLock()
	same := s.state.LedgerConnected == connected
	s.mu.RUnlock()

	if same {
		return
	}

	s.Update(func(st *State) {
		st.LedgerConnected = connected
	})
}

func StateFromConfig(c *SConfig) State {
	st := State{
		ConversionRate: c.ConversionRate,
		NativeCurrency: c.NativeCurrency,
		Provider: Provider{
			Nickname: c.Network.Nickname,
			Ticker:   c.Network.Ticker,
			ChainID:  c.Network.ChainID,
		},
		SubjectMetadata: make(map[string]SubjectMetadata),
	}

	for _, a := range c.Accounts {
		if !common.IsHexAddress(a.Address) {
			log.Error().Msgf("StateFromConfig: invalid account address: %s", a.Address)
			continue
		}
		st.Accounts = append(st.Accounts, Account{
			Address: common.HexToAddress(a.Address),
			Name:    a.Name,
			Signer:  strings.ToLower(a.Signer),
		})
	}

	for _, s := range c.Subjects {
		st.SubjectMetadata[s.Origin] = SubjectMetadata{
			Origin:  s.Origin,
			Name:    s.Name,
			IconURL: s.IconURL,
		}
	}

	return st
}
