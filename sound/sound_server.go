package sound

import (
	"bytes"
	"io"
	"os"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto"
	"github.com/rs/zerolog/log"
)

var alert []byte

// Init loads the alert file and starts listening. It is a no-op when the
// file cannot be decoded.
func Init(file string) {
	data, err := Load(file)
	if err != nil {
		log.Error().Err(err).Msgf("sound: cannot load %s", file)
		return
	}
	alert = data

	ch := bus.Subscribe("queue", "sound")
	go Loop(ch)
}

// Load reads an mp3 file and checks that it decodes.
func Load(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if _, err := mp3.NewDecoder(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func Loop(ch chan *bus.Message) {
	var ctx *oto.Context
	var player *oto.Player

	for msg := range ch {
		if !shouldPlay(msg) {
			continue
		}

		d, err := mp3.NewDecoder(bytes.NewReader(alert))
		if err != nil {
			log.Error().Err(err).Msg("sound: decode")
			continue
		}

		if ctx == nil {
			ctx, err = oto.NewContext(d.SampleRate(), 2, 2, 8192)
			if err != nil {
				log.Error().Msgf("Error creating audio context: %v", err)
				return
			}
			player = ctx.NewPlayer()
			defer player.Close()
		}

		if _, err := io.Copy(player, d); err != nil {
			log.Error().Msgf("sound: error playing sound: %v", err)
		}
	}
}

func shouldPlay(msg *bus.Message) bool {
	if msg.RespondTo != 0 {
		return false
	}

	switch msg.Topic {
	case "queue":
		return msg.Type == "added"
	case "sound":
		return msg.Type == "play"
	}
	return false
}
