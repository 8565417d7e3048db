package sigreq

import (
	"errors"
	"fmt"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMissingCallback    = errors.New("missing sign/cancel callback")
	ErrAccountNotFound    = errors.New("account not found")
	ErrMalformedTypedData = errors.New("malformed typed data")
)

// Action is an asynchronous wallet operation started by a UI control. It
// returns when the operation settles.
type Action func(ev cmn.UIEvent) error

type History interface {
	Push(route string)
}

type RejectModalParams struct {
	UnapprovedTxCount int
	OnSubmit          func()
}

// Callbacks are injected by the screen that owns the request.
type Callbacks struct {
	SignPersonalMessage   Action
	CancelPersonalMessage Action
	SignTypedMessage      Action
	CancelTypedMessage    Action
	SignMessage           Action
	CancelMessage         Action

	CancelAll                               func() error
	ClearConfirmTransaction                 func()
	History                                 History
	MostRecentOverviewPage                  string
	ShowRejectTransactionsConfirmationModal func(RejectModalParams)
	MessagesCount                           int
}

// Props is everything the signature request pane renders from.
type Props struct {
	Callbacks

	FromAccount cmn.Account
	TxData      cmn.SignatureRequest
	Kind        Kind
	Cancel      Action
	Sign        Action
	TypedData   *TypedPayload // set for TypedDataSign

	ConversionRate                   *float64
	NativeCurrency                   string
	CurrentNetwork                   string
	SubjectMetadata                  map[string]cmn.SubjectMetadata
	IsLedgerWallet                   bool
	HardwareWalletRequiresConnection bool
}

// Resolve binds a request to the wallet state and the screen callbacks. It
// reads st only through q and has no side effects.
func Resolve(st *cmn.State, q Queries, cb Callbacks, txData cmn.SignatureRequest) (*Props, error) {
	from := txData.MsgParams.From

	p := &Props{
		Callbacks:                        cb,
		TxData:                           txData,
		HardwareWalletRequiresConnection: q.RequiresLedgerConnection(st, from),
		IsLedgerWallet:                   q.IsLedgerAddress(st, from),
		CurrentNetwork:                   q.NetworkName(st),
		ConversionRate:                   q.ConversionRate(st),
		NativeCurrency:                   q.NativeCurrency(st),
		SubjectMetadata:                  q.SubjectMetadata(st),
	}

	kind, err := KindOf(txData.Type)
	if err != nil {
		return nil, err
	}
	p.Kind = kind
	p.Cancel, p.Sign = kind.pair(&cb)
	if p.Cancel == nil || p.Sign == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingCallback, txData.Type)
	}

	acc, ok := GetAccountByAddress(q.AccountsWithBalance(st), from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, from.Hex())
	}
	p.FromAccount = acc

	if _, ok := kind.(TypedDataSign); ok {
		p.TypedData, err = ParseTypedData(txData.MsgParams.Data)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func GetAccountByAddress(accounts []cmn.Account, a common.Address) (cmn.Account, bool) {
	for _, acc := range accounts {
		if acc.Address == a {
			return acc, true
		}
	}
	return cmn.Account{}, false
}
