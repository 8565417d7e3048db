package signer

import (
	"context"
	"fmt"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/rs/zerolog/log"
)

func Init(s Signer) {
	ch := bus.Subscribe("signer")
	go Loop(s, ch)
}

func Loop(s Signer, ch chan *bus.Message) {
	for msg := range ch {
		if msg.RespondTo != 0 {
			continue // ignore responses
		}
		go process(s, msg)
	}
}

func process(s Signer, msg *bus.Message) {
	switch msg.Type {
	case "sign":
		req, ok := msg.Data.(*bus.B_SignerSign)
		if !ok {
			log.Error().Msg("signer: invalid message data")
			msg.Respond(nil, bus.ErrInvalidMessageData)
			return
		}

		sig, err := sign(context.Background(), s, req)
		if err != nil {
			log.Error().Err(err).Msgf("signer: %s for %s failed", req.Type, req.From.Hex())
		}
		msg.Respond(sig, err)
	}
}

func sign(ctx context.Context, s Signer, req *bus.B_SignerSign) ([]byte, error) {
	if s == nil {
		return nil, ErrNoSigner
	}

	switch cmn.MessageType(req.Type) {
	case cmn.MT_PersonalSign:
		return s.SignPersonal(ctx, req.From, req.Data)
	case cmn.MT_TypedDataSign:
		return s.SignTyped(ctx, req.From, req.Data)
	case cmn.MT_LegacySign:
		return s.SignLegacy(ctx, req.From, req.Data)
	}
	return nil, fmt.Errorf("signer: unsupported message type %q", req.Type)
}
