// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n loads the embedded YAML message catalogs and translates
// user-facing strings (validation messages, CLI output).
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
	available map[string]string
)

// Init (re)builds the bundle and selects lang. Unknown languages fall back to
// English message by message.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	available = map[string]string{}

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		mf, err := bundle.ParseMessageFileBytes(data, f.Name())
		if err != nil {
			continue
		}
		tag := mf.Tag.String()
		available[tag] = displayName(tag)
	}

	if lang == "" {
		lang = "en"
	}
	current = lang
	localizer = i18n.NewLocalizer(bundle, lang, "en")
}

// SetLang is an alias for Init kept for call-site readability.
func SetLang(lang string) { Init(lang) }

// GetLang returns the language passed to the last Init.
func GetLang() string {
	if localizer == nil {
		Init("en")
	}
	return current
}

// GetAvailableLocales maps each embedded locale tag to its display name.
func GetAvailableLocales() map[string]string {
	if localizer == nil {
		Init("en")
	}
	out := make(map[string]string, len(available))
	for k, v := range available {
		out[k] = v
	}
	return out
}

// Locales returns the embedded locale tags in sorted order.
func Locales() []string {
	av := GetAvailableLocales()
	tags := make([]string, 0, len(av))
	for k := range av {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}

// T translates messageID. A single map argument is used as template data;
// any other arguments are applied to the translated text with fmt.Sprintf.
// Unknown IDs are returned unchanged so missing catalog entries stay visible.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		msg = messageID
	}
	if len(args) > 0 && strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Tf translates messageID with named template data.
func Tf(messageID string, data map[string]any) string {
	return T(messageID, data)
}

func displayName(tag string) string {
	switch tag {
	case "en":
		return "English"
	case "de":
		return "Deutsch"
	default:
		return tag
	}
}
