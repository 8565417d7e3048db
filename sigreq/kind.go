package sigreq

import (
	"fmt"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
)

// Kind is one of PersonalSign, TypedDataSign or LegacySign. Each variant
// picks its own cancel/sign pair, so a request that resolved to a Kind always
// has both.
type Kind interface {
	Type() cmn.MessageType
	pair(cb *Callbacks) (cancel Action, sign Action)
}

type PersonalSign struct{}
type TypedDataSign struct{}
type LegacySign struct{}

func (PersonalSign) Type() cmn.MessageType  { return cmn.MT_PersonalSign }
func (TypedDataSign) Type() cmn.MessageType { return cmn.MT_TypedDataSign }
func (LegacySign) Type() cmn.MessageType    { return cmn.MT_LegacySign }

func (PersonalSign) pair(cb *Callbacks) (Action, Action) {
	return cb.CancelPersonalMessage, cb.SignPersonalMessage
}

func (TypedDataSign) pair(cb *Callbacks) (Action, Action) {
	return cb.CancelTypedMessage, cb.SignTypedMessage
}

func (LegacySign) pair(cb *Callbacks) (Action, Action) {
	return cb.CancelMessage, cb.SignMessage
}

func KindOf(t cmn.MessageType) (Kind, error) {
	switch t {
	case cmn.MT_PersonalSign:
		return PersonalSign{}, nil
	case cmn.MT_TypedDataSign:
		return TypedDataSign{}, nil
	case cmn.MT_LegacySign:
		return LegacySign{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, t)
}
