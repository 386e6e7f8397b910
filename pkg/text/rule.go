// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"strings"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"
)

// 📏 Rule maps a set of floating-button classes to the emoji their links must carry
type Rule struct {
	Name      string   // Short name used in logs
	Classes   []string // CSS class names that select the element
	Shortcode string   // Emoji shortcode, e.g. ":speech_balloon:"
}

// 🏭 DefaultRules returns the two fixed correction rules
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "chat",
			Classes:   []string{"whatsapp-floating", "sms-floating"},
			Shortcode: ":speech_balloon:",
		},
		{
			Name:      "phone",
			Classes:   []string{"tlp-floating"},
			Shortcode: ":telephone_receiver:",
		},
	}
}

// 😀 Emoji returns the glyph for the rule's shortcode, or "" if the shortcode is unknown
func (r Rule) Emoji() string {
	return emoji.CodeMap()[r.Shortcode]
}

// HasClass reports whether name is one of the rule's classes.
func (r Rule) HasClass(name string) bool {
	for _, c := range r.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// foreignEmoji returns the shortcodes of emoji in gap other than target.
func foreignEmoji(gap, target string) []string {
	rev := emoji.RevCodeMap()
	var found []string
	for i := 0; i < len(gap); {
		r, size := utf8.DecodeRuneInString(gap[i:])
		glyph := string(r)
		i += size
		if strings.Contains(target, glyph) {
			continue
		}
		codes, ok := rev[glyph]
		if !ok {
			codes, ok = rev[glyph+"\ufe0f"]
		}
		if ok && len(codes) > 0 {
			found = append(found, codes[0])
		}
	}
	return found
}
