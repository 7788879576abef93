// messages.go
//
// Liming and fertilization consultancy portal with customer self-service and calculators
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of limeportal.
// limeportal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// limeportal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with limeportal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package utils

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// Message keys for the generic, user-facing error texts
const (
	MsgServerError  = "server_error"
	MsgNotFound     = "not_found"
	MsgInvalidBody  = "invalid_body"
	MsgUnauthorized = "unauthorized"
	MsgForbidden    = "forbidden"
	MsgBotFailed    = "bot_failed"
	MsgInvalidInput = "invalid_input"
)

var catalog = map[language.Tag]map[string]string{
	language.Polish: {
		MsgServerError:  "Wystąpił błąd serwera. Spróbuj ponownie później.",
		MsgNotFound:     "Nie znaleziono zasobu.",
		MsgInvalidBody:  "Nieprawidłowe dane żądania.",
		MsgUnauthorized: "Zaloguj się, aby kontynuować.",
		MsgForbidden:    "Brak uprawnień administratora.",
		MsgBotFailed:    "Weryfikacja antyspamowa nie powiodła się.",
		MsgInvalidInput: "Nieprawidłowe dane wejściowe.",
	},
	language.English: {
		MsgServerError:  "A server error occurred. Please try again later.",
		MsgNotFound:     "Resource not found.",
		MsgInvalidBody:  "Invalid request body.",
		MsgUnauthorized: "Please sign in to continue.",
		MsgForbidden:    "Administrator role required.",
		MsgBotFailed:    "Bot protection check failed.",
		MsgInvalidInput: "Invalid input.",
	},
}

var matcher atomic.Pointer[languageMatcher]

type languageMatcher struct {
	tags    []language.Tag
	matcher language.Matcher
}

func init() {
	SetDefaultLocale("pl")
}

// SetDefaultLocale selects the language used when Accept-Language matches nothing
func SetDefaultLocale(locale string) {
	def := language.Polish
	if tag, err := language.Parse(locale); err == nil {
		if base, _ := tag.Base(); base.String() == "en" {
			def = language.English
		}
	}
	tags := []language.Tag{def}
	for tag := range catalog {
		if tag != def {
			tags = append(tags, tag)
		}
	}
	matcher.Store(&languageMatcher{tags: tags, matcher: language.NewMatcher(tags)})
}

// Locale picks the best supported language for an Accept-Language header value
func Locale(acceptLanguage string) language.Tag {
	m := matcher.Load()
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return m.tags[0]
	}
	_, idx, _ := m.matcher.Match(prefs...)
	return m.tags[idx]
}

// Message returns the text for key in the caller's language
func Message(c *fiber.Ctx, key string) string {
	msgs := catalog[Locale(c.Get(fiber.HeaderAcceptLanguage))]
	if msg, ok := msgs[key]; ok {
		return msg
	}
	return key
}
