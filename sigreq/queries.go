package sigreq

import (
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
)

// Queries are the reads the binding makes against a state snapshot.
type Queries interface {
	AccountsWithBalance(st *cmn.State) []cmn.Account
	RequiresLedgerConnection(st *cmn.State, a common.Address) bool
	IsLedgerAddress(st *cmn.State, a common.Address) bool
	NetworkName(st *cmn.State) string
	ConversionRate(st *cmn.State) *float64
	NativeCurrency(st *cmn.State) string
	SubjectMetadata(st *cmn.State) map[string]cmn.SubjectMetadata
}

type StateQueries struct{}

func (StateQueries) AccountsWithBalance(st *cmn.State) []cmn.Account {
	return st.Accounts
}

func (q StateQueries) RequiresLedgerConnection(st *cmn.State, a common.Address) bool {
	return q.IsLedgerAddress(st, a) && !st.LedgerConnected
}

func (StateQueries) IsLedgerAddress(st *cmn.State, a common.Address) bool {
	acc := st.GetAccount(a)
	return acc != nil && acc.Signer == cmn.SIGNER_LEDGER
}

func (StateQueries) NetworkName(st *cmn.State) string {
	if st.Provider.Nickname != "" {
		return st.Provider.Nickname
	}
	return st.Provider.Ticker
}

func (StateQueries) ConversionRate(st *cmn.State) *float64 {
	return st.ConversionRate
}

func (StateQueries) NativeCurrency(st *cmn.State) string {
	return st.NativeCurrency
}

func (StateQueries) SubjectMetadata(st *cmn.State) map[string]cmn.SubjectMetadata {
	return st.SubjectMetadata
}
