package navigator

import (
	"embed"
	"io/fs"
	"os"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

const backButtonMessageID = "BackButtonLabel"

// Localizer supplies the localized strings the navigator writes into pages.
type Localizer struct {
	localizer *i18n.Localizer
}

// NewLocalizer loads the bundled translations and matches them against
// langs, most preferred first. Without langs the NAVIGATOR_LANG environment
// variable is used, falling back to English.
func NewLocalizer(langs ...string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFiles, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFiles, f); err != nil {
			return nil, err
		}
	}

	if len(langs) == 0 {
		if env := os.Getenv(constants.LanguageEnvVar); env != "" {
			langs = []string{env}
		}
	}

	return &Localizer{localizer: i18n.NewLocalizer(bundle, langs...)}, nil
}

// BackLabel returns the label for a back button leading to a page titled
// previous. Untitled pages get the localized "Back".
func (l *Localizer) BackLabel(previous string) string {
	if previous != "" {
		return previous
	}

	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID:    backButtonMessageID,
			Other: "Back",
		},
	})
	if err != nil {
		internal.GetInternalLogger().Warn("failed to localize back label", "error", err)
		return "Back"
	}
	return msg
}
