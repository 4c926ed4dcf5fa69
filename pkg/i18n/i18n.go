package i18n

import (
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init sets up the bundle with English as the fallback language.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	bundle = goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
}

// Load parses a locale message file (e.g. active.id.json) into the bundle.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()
	_, err := bundle.LoadMessageFile(path)
	return err
}

// T resolves a message ID for the requested language. Unknown IDs fall
// back to the ID itself so a missing translation never breaks a response.
func T(lang, messageID string) string {
	mu.RLock()
	defer mu.RUnlock()
	if bundle == nil {
		return messageID
	}
	localizer := goi18n.NewLocalizer(bundle, lang)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
