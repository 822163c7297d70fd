// Package i18n resolves display strings for the configured language.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"HOME_TITLE":         "fleetview - vehicles",
		"MAP_TITLE":          "fleetview - map",
		"SEE_MAP":            "See map",
		"BACK":               "Back",
		"LOADING":            "Loading vehicles...",
		"NO_VEHICLES":        "No vehicles",
		"CATEGORY_CARGO":     "Cargo",
		"CATEGORY_PASSENGER": "Passenger",
		"CATEGORY_SPECIAL":   "Special",
		"NAME":               "Name",
		"CATEGORY":           "Category",
		"DRIVER":             "Driver",
		"PHONE":              "Phone",
		"HELP_HOME":          "[1-3 Category] [m See map] [q Quit]",
		"HELP_MAP":           "[b Back] [q Quit]",
	},
	language.Russian: {
		"HOME_TITLE":         "fleetview - транспорт",
		"MAP_TITLE":          "fleetview - карта",
		"SEE_MAP":            "Посмотреть на карте",
		"BACK":               "Назад",
		"LOADING":            "Загрузка транспорта...",
		"NO_VEHICLES":        "Нет транспорта",
		"CATEGORY_CARGO":     "Грузовой",
		"CATEGORY_PASSENGER": "Пассажирский",
		"CATEGORY_SPECIAL":   "Спецтранспорт",
		"NAME":               "Название",
		"CATEGORY":           "Категория",
		"DRIVER":             "Водитель",
		"PHONE":              "Телефон",
		"HELP_HOME":          "[1-3 Категория] [m Карта] [q Выход]",
		"HELP_MAP":           "[b Назад] [q Выход]",
	},
}

// Supported lists the languages with a catalog, English first as fallback.
var Supported = []language.Tag{language.English, language.Russian}

// builtin is built once from messages, which stays the only copy of the texts.
var builtin = mustBuildCatalog()

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func mustBuildCatalog() *catalog.Builder {
	b, err := buildCatalog()
	if err != nil {
		panic(err)
	}
	return b
}

// Translator looks up display strings by key.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the best supported language for lang (a BCP 47 tag such as
// "ru-RU"). Unparseable or unsupported tags fall back to English.
func New(lang string) *Translator {
	desired, _ := language.Parse(lang)
	_, idx, _ := language.NewMatcher(Supported).Match(desired)
	tag := Supported[idx]

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builtin)),
	}
}

func (t *Translator) Language() language.Tag {
	return t.tag
}

// T returns the string for key, or key itself when it has no translation.
func (t *Translator) T(key string) string {
	if _, ok := messages[t.tag][key]; !ok {
		return key
	}
	return t.printer.Sprintf(key)
}
