package utils

import (
	"embed"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var locales embed.FS

var bundle *i18n.Bundle

func init() {
	InitI18NBundle()
}

// InitI18NBundle loads the embedded dashboard messages.
func InitI18NBundle() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := locales.ReadDir("locales")
	if nil != err {
		log.WithField("prefix", "i18n").Panic(err)
	}
	for _, f := range files {
		data, err := locales.ReadFile(path.Join("locales", f.Name()))
		if nil != err {
			log.WithField("prefix", "i18n").Panic(err)
		}
		bundle.MustParseMessageFileBytes(data, f.Name())
	}
}

func NewLocalizer(langs ...string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, langs...)
}

// Translate localizes a message, falling back to its id.
func Translate(loc *i18n.Localizer, id string, data map[string]interface{}) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if nil != err {
		log.WithFields(log.Fields{"prefix": "i18n", "id": id}).WithError(err).Warn("can not localize message")
		return id
	}
	return msg
}
