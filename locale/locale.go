package locale

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var english = map[string]string{
	"youSign":                              "You are signing",
	"message":                              "Message",
	"domain":                               "Domain",
	"signNotice":                           "Signing this message can be dangerous. This signature could potentially perform any operation on your account's behalf, including granting complete control of your account and all of its assets to the requesting site. Only sign this message if you know what you're doing or completely trust the requesting site.",
	"learnMoreUpperCase":                   "Learn more",
	"sigRequest":                           "Signature Request",
	"ok":                                   "OK",
	"cancel":                               "Cancel",
	"sign":                                 "Sign",
	"reject":                               "Reject",
	"rejectTxsN":                           "Reject %d requests",
	"rejectTxsDescription":                 "You are about to batch reject %d requests.",
	"rejectAll":                            "Reject all",
	"balance":                              "Balance",
	"account":                              "Account",
	"network":                              "Network",
	"copyAddress":                          "Copy address",
	"copiedAddress":                        "Copied: %s",
	"nothingToConfirm":                     "Nothing to confirm",
	"pendingRequests":                      "Pending requests: %d",
	"review":                               "Review",
	"waitingForSigner":                     "Waiting for the signer",
	"ledgerConnectionInstructionHeader":    "Prior to clicking confirm:",
	"ledgerConnectionInstructionStepOne":   "Connect your Ledger device directly to your computer",
	"ledgerConnectionInstructionStepTwo":   "Unlock the device and open the Ethereum app",
	"ledgerConnectionInstructionStepThree": "Keep the device connected until signing is complete",
	"ledgerConnectionInstructionStepFour":  "Enable \"smart contract data\" or \"blind signing\" on your Ledger device",
	"ledgerDeviceNotConnected":             "Ledger device is not connected",
	"requestCouldNotBeShown":               "Request could not be shown: %v",
}

var catalogs = map[language.Tag]map[string]string{
	language.English: english,
}

var (
	mu      sync.RWMutex
	printer *message.Printer
	matcher language.Matcher
)

func init() {
	tags := []language.Tag{}
	for tag, msgs := range catalogs {
		tags = append(tags, tag)
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				log.Error().Err(err).Msgf("locale: cannot register %s", key)
			}
		}
	}
	matcher = language.NewMatcher(tags)
	printer = message.NewPrinter(language.English)
}

// SetLanguage selects the closest supported language for tag.
func SetLanguage(tag string) {
	t, _, _ := matcher.Match(language.Make(tag))
	base, _ := t.Base()

	mu.Lock()
	printer = message.NewPrinter(language.Make(base.String()))
	mu.Unlock()

	log.Debug().Msgf("locale: language set to %s (requested %s)", base, tag)
}

// T returns the display string for key, formatted with args.
func T(key string, args ...any) string {
	mu.RLock()
	p := printer
	mu.RUnlock()

	return p.Sprintf(key, args...)
}
