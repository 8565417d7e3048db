package sigreq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func testState() *cmn.State {
	rate := 2000.0
	return &cmn.State{
		Accounts: []cmn.Account{
			{Address: alice, Name: "Alice", Balance: "0xde0b6b3a7640000"},
			{Address: bob, Name: "Bob", Signer: cmn.SIGNER_LEDGER},
		},
		ConversionRate: &rate,
		NativeCurrency: "ETH",
		Provider:       cmn.Provider{Nickname: "Mainnet", Ticker: "ETH", ChainID: 1},
		SubjectMetadata: map[string]cmn.SubjectMetadata{
			"https://app.example": {Origin: "https://app.example", Name: "Example"},
		},
	}
}

// markedCallbacks returns callbacks whose actions fail with their own name,
// so a test can tell which one was selected.
func markedCallbacks() Callbacks {
	mark := func(name string) Action {
		return func(cmn.UIEvent) error { return errors.New(name) }
	}
	return Callbacks{
		SignPersonalMessage:    mark("signPersonal"),
		CancelPersonalMessage:  mark("cancelPersonal"),
		SignTypedMessage:       mark("signTyped"),
		CancelTypedMessage:     mark("cancelTyped"),
		SignMessage:            mark("sign"),
		CancelMessage:          mark("cancel"),
		MostRecentOverviewPage: "/",
		MessagesCount:          2,
	}
}

func request(t cmn.MessageType, from common.Address, data string) cmn.SignatureRequest {
	return cmn.SignatureRequest{
		ID:   7,
		Type: t,
		MsgParams: cmn.MsgParams{
			Data:   data,
			From:   from,
			Origin: "https://app.example",
		},
	}
}

func TestResolveSelectsPairByType(t *testing.T) {
	cases := []struct {
		typ    cmn.MessageType
		data   string
		cancel string
		sign   string
		kind   Kind
	}{
		{cmn.MT_PersonalSign, "0x68656c6c6f", "cancelPersonal", "signPersonal", PersonalSign{}},
		{cmn.MT_TypedDataSign, `{"domain":{},"message":{}}`, "cancelTyped", "signTyped", TypedDataSign{}},
		{cmn.MT_LegacySign, "0x68656c6c6f", "cancel", "sign", LegacySign{}},
	}

	for _, c := range cases {
		t.Run(string(c.typ), func(t *testing.T) {
			p, err := Resolve(testState(), StateQueries{}, markedCallbacks(), request(c.typ, alice, c.data))
			require.NoError(t, err)

			assert.Equal(t, c.kind, p.Kind)
			assert.EqualError(t, p.Cancel(cmn.NewUIEvent("cancel")), c.cancel)
			assert.EqualError(t, p.Sign(cmn.NewUIEvent("sign")), c.sign)
		})
	}
}

func TestResolveFillsProps(t *testing.T) {
	st := testState()
	p, err := Resolve(st, StateQueries{}, markedCallbacks(), request(cmn.MT_PersonalSign, alice, "0x00"))
	require.NoError(t, err)

	assert.Equal(t, "Alice", p.FromAccount.Name)
	assert.Equal(t, "0xde0b6b3a7640000", p.FromAccount.Balance)
	assert.Equal(t, "Mainnet", p.CurrentNetwork)
	assert.Equal(t, "ETH", p.NativeCurrency)
	require.NotNil(t, p.ConversionRate)
	assert.Equal(t, 2000.0, *p.ConversionRate)
	assert.Equal(t, "Example", p.SubjectMetadata["https://app.example"].Name)
	assert.False(t, p.IsLedgerWallet)
	assert.False(t, p.HardwareWalletRequiresConnection)

	// screen callbacks pass through
	assert.Equal(t, 2, p.MessagesCount)
	assert.Equal(t, "/", p.MostRecentOverviewPage)
	assert.Nil(t, p.TypedData)
}

func TestResolveNetworkFallsBackToTicker(t *testing.T) {
	st := testState()
	st.Provider.Nickname = ""

	p, err := Resolve(st, StateQueries{}, markedCallbacks(), request(cmn.MT_PersonalSign, alice, "0x00"))
	require.NoError(t, err)
	assert.Equal(t, "ETH", p.CurrentNetwork)
}

func TestResolveLedgerAccount(t *testing.T) {
	st := testState()

	p, err := Resolve(st, StateQueries{}, markedCallbacks(), request(cmn.MT_PersonalSign, bob, "0x00"))
	require.NoError(t, err)
	assert.True(t, p.IsLedgerWallet)
	assert.True(t, p.HardwareWalletRequiresConnection)

	st.LedgerConnected = true
	p, err = Resolve(st, StateQueries{}, markedCallbacks(), request(cmn.MT_PersonalSign, bob, "0x00"))
	require.NoError(t, err)
	assert.True(t, p.IsLedgerWallet)
	assert.False(t, p.HardwareWalletRequiresConnection)
}

func TestResolveUnknownAccount(t *testing.T) {
	stranger := common.HexToAddress("0x3333333333333333333333333333333333333333")

	_, err := Resolve(testState(), StateQueries{}, markedCallbacks(), request(cmn.MT_PersonalSign, stranger, "0x00"))
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResolveUnknownType(t *testing.T) {
	_, err := Resolve(testState(), StateQueries{}, markedCallbacks(), request("eth_decrypt", alice, "0x00"))
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestResolveMissingCallback(t *testing.T) {
	cb := markedCallbacks()
	cb.SignTypedMessage = nil

	_, err := Resolve(testState(), StateQueries{}, cb, request(cmn.MT_TypedDataSign, alice, "{}"))
	assert.ErrorIs(t, err, ErrMissingCallback)

	// other kinds are unaffected
	_, err = Resolve(testState(), StateQueries{}, cb, request(cmn.MT_PersonalSign, alice, "0x00"))
	assert.NoError(t, err)
}

func TestResolveMalformedTypedData(t *testing.T) {
	_, err := Resolve(testState(), StateQueries{}, markedCallbacks(), request(cmn.MT_TypedDataSign, alice, "{not json"))
	assert.ErrorIs(t, err, ErrMalformedTypedData)
}

func TestParseTypedDataV1(t *testing.T) {
	p, err := ParseTypedData(`[{"type":"string","name":"Message","value":"Hi, Alice!"},{"type":"bool","name":"ok","value":true}]`)
	require.NoError(t, err)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, cmn.Row{Name: "Message", Value: "Hi, Alice!"}, p.Rows[0])
	assert.Equal(t, cmn.Row{Name: "ok", Value: true}, p.Rows[1])
	assert.Nil(t, p.Domain)
	assert.Nil(t, p.Message)
}

func TestParseTypedDataObject(t *testing.T) {
	p, err := ParseTypedData(`{"domain":{"name":"Ether Mail","chainId":1},"message":{"contents":"Hello"}}`)
	require.NoError(t, err)

	assert.Empty(t, p.Rows)
	assert.Equal(t, map[string]any{"name": "Ether Mail", "chainId": json.Number("1")}, p.Domain)
	assert.Equal(t, map[string]any{"contents": "Hello"}, p.Message)
}

func TestParseTypedDataTrailingGarbage(t *testing.T) {
	_, err := ParseTypedData(`{"domain":{}} {}`)
	assert.ErrorIs(t, err, ErrMalformedTypedData)
}

func TestParseTypedDataMissingSections(t *testing.T) {
	p, err := ParseTypedData(`{"types":{}}`)
	require.NoError(t, err)
	assert.Nil(t, p.Domain)
	assert.Nil(t, p.Message)
}

func TestKindOf(t *testing.T) {
	for _, mt := range []cmn.MessageType{cmn.MT_PersonalSign, cmn.MT_TypedDataSign, cmn.MT_LegacySign} {
		k, err := KindOf(mt)
		require.NoError(t, err)
		assert.Equal(t, mt, k.Type())
	}

	_, err := KindOf("")
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}
