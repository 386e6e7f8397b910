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
	"io"
	"regexp"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"
)

// 📍 Site is one href whose dash-delimited segment is a candidate for insertion
type Site struct {
	Offset int    // Byte offset in the document where the emoji goes (right before the dash)
	Gap    string // Text between the last '/' and the first '-'
	Href   string // Raw href value, for logging
}

// 🔍 Matcher locates candidate links for a rule
type Matcher interface {
	Locate(content string, rule Rule) ([]Site, error)
}

// 🏭 NewMatcher returns the matcher registered under name ("tag" or "regex")
func NewMatcher(name string) (Matcher, error) {
	switch name {
	case "", "tag":
		return &TagMatcher{}, nil
	case "regex":
		return &RegexMatcher{}, nil
	default:
		return nil, errors.Errorf("unknown matcher %q", name)
	}
}

// gapBounds finds the segment after a '/' that runs up to the next '-'.
// The last such '/' wins; the gap may not contain '/'. Slashes of a
// "scheme://" prefix never count, so the host is left alone.
func gapBounds(href string) (start, end int, ok bool) {
	floor := -1
	if i := strings.Index(href, "://"); i >= 0 {
		floor = i + 2
	}
	for slash := strings.LastIndexByte(href, '/'); slash > floor; slash = strings.LastIndexByte(href[:slash], '/') {
		seg := href[slash+1:]
		dash := strings.IndexByte(seg, '-')
		if dash < 0 || strings.IndexByte(seg[:dash], '/') >= 0 {
			continue
		}
		return slash + 1, slash + 1 + dash, true
	}
	return 0, 0, false
}

// 📜 RegexMatcher spans from the class attribute to the nearest following
// href on the same line. It does not check that both belong to one element.
// Patterns are compiled once per rule and reused across files.
type RegexMatcher struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func (m *RegexMatcher) pattern(rule Rule) (*regexp.Regexp, error) {
	classes := make([]string, len(rule.Classes))
	for i, c := range rule.Classes {
		classes[i] = regexp.QuoteMeta(c)
	}
	expr := `class="(?:` + strings.Join(classes, "|") + `)".*?href="([^"]*)"`

	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok := m.patterns[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling pattern for rule %s: %w", rule.Name, err)
	}
	if m.patterns == nil {
		m.patterns = make(map[string]*regexp.Regexp)
	}
	m.patterns[expr] = re
	return re, nil
}

// Locate implements Matcher.
func (m *RegexMatcher) Locate(content string, rule Rule) ([]Site, error) {
	re, err := m.pattern(rule)
	if err != nil {
		return nil, err
	}

	var sites []Site
	for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
		hrefStart, hrefEnd := loc[2], loc[3]
		href := content[hrefStart:hrefEnd]
		start, end, ok := gapBounds(href)
		if !ok {
			continue
		}
		sites = append(sites, Site{
			Offset: hrefStart + end,
			Gap:    href[start:end],
			Href:   href,
		})
	}
	return sites, nil
}

// 🏷️ TagMatcher walks start tags with the html tokenizer and only matches
// when class and href sit on the same element.
type TagMatcher struct{}

// Locate implements Matcher.
func (m *TagMatcher) Locate(content string, rule Rule) ([]Site, error) {
	var sites []Site
	z := html.NewTokenizer(strings.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		// Raw must be copied before TagAttr, which unescapes in place.
		raw := string(z.Raw())
		tagStart := offset
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return sites, nil
			}
			return nil, errors.Errorf("tokenizing html: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
		default:
			continue
		}

		if !classMatches(z, rule) {
			continue
		}

		valStart, valEnd, ok := hrefValue(raw)
		if !ok {
			continue
		}
		href := raw[valStart:valEnd]
		start, end, ok := gapBounds(href)
		if !ok {
			continue
		}
		sites = append(sites, Site{
			Offset: tagStart + valStart + end,
			Gap:    href[start:end],
			Href:   href,
		})
	}
}

func classMatches(z *html.Tokenizer, rule Rule) bool {
	if _, hasAttr := z.TagName(); !hasAttr {
		return false
	}
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if rule.HasClass(c) {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}

// hrefValue returns the byte range of the href value inside a raw start tag.
// It steps over the tag one attribute at a time, so text inside another
// attribute's value is never read as an href. Quoted and unquoted values
// are both accepted.
func hrefValue(raw string) (start, end int, ok bool) {
	n := len(raw)
	i := 1
	for i < n && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}

	for i < n {
		for i < n && (isTagSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= n || raw[i] == '>' {
			return 0, 0, false
		}

		// A name may start with '='.
		nameStart := i
		i++
		for i < n && !isTagSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		name := raw[nameStart:i]

		for i < n && isTagSpace(raw[i]) {
			i++
		}
		if i >= n || raw[i] != '=' {
			continue
		}
		i++
		for i < n && isTagSpace(raw[i]) {
			i++
		}

		var valStart, valEnd int
		if i < n && (raw[i] == '"' || raw[i] == '\'') {
			valStart = i + 1
			closing := strings.IndexByte(raw[valStart:], raw[i])
			if closing < 0 {
				return 0, 0, false
			}
			valEnd = valStart + closing
			i = valEnd + 1
		} else {
			valStart = i
			for i < n && !isTagSpace(raw[i]) && raw[i] != '>' {
				i++
			}
			valEnd = i
		}

		if strings.EqualFold(name, "href") {
			return valStart, valEnd, true
		}
	}
	return 0, 0, false
}

func isTagSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
