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
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ✏️ Insertion records one emoji inserted into a link
type Insertion struct {
	Rule   string // Rule name
	Emoji  string // Inserted glyph
	Offset int    // Byte offset in the content the rule ran against
	Gap    string // Gap text before insertion
	Href   string // Href value before insertion
}

// 📊 Result is the outcome of correcting one document
type Result struct {
	OriginalContent string
	ModifiedContent string
	WasModified     bool
	InsertionCount  int
	Insertions      []Insertion
	Warnings        []string // Links that already held a different emoji
}

// 🔧 Corrector inserts missing emoji into floating-button links
type Corrector struct {
	matcher Matcher
	rules   []Rule
}

// CorrectorOption configures a Corrector.
type CorrectorOption func(*Corrector)

// WithMatcher sets the matching strategy. The default is TagMatcher.
func WithMatcher(m Matcher) CorrectorOption {
	return func(c *Corrector) {
		c.matcher = m
	}
}

// WithRules replaces the rule set. Intended for tests.
func WithRules(rules ...Rule) CorrectorOption {
	return func(c *Corrector) {
		c.rules = rules
	}
}

// 🏭 NewCorrector creates a Corrector with the default rules
func NewCorrector(opts ...CorrectorOption) *Corrector {
	c := &Corrector{
		matcher: &TagMatcher{},
		rules:   DefaultRules(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// 🎯 Correct applies every rule to content in order
func (c *Corrector) Correct(ctx context.Context, content string) (*Result, error) {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, rule := range c.rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("correcting content: %w", err)
		}

		glyph := rule.Emoji()
		if glyph == "" {
			return nil, errors.Errorf("rule %s: unknown shortcode %q", rule.Name, rule.Shortcode)
		}

		sites, err := c.matcher.Locate(current, rule)
		if err != nil {
			return nil, errors.Errorf("rule %s: locating links: %w", rule.Name, err)
		}

		var pending []Insertion
		for _, site := range sites {
			if strings.Contains(site.Gap, glyph) {
				continue
			}
			if others := foreignEmoji(site.Gap, glyph); len(others) > 0 {
				result.Warnings = append(result.Warnings, "link "+site.Href+" already holds "+strings.Join(others, " ")+", inserting "+rule.Shortcode+" as well")
			}
			pending = append(pending, Insertion{
				Rule:   rule.Name,
				Emoji:  glyph,
				Offset: site.Offset,
				Gap:    site.Gap,
				Href:   site.Href,
			})
		}

		current = apply(current, pending)
		result.Insertions = append(result.Insertions, pending...)

		zerolog.Ctx(ctx).Trace().
			Str("rule", rule.Name).
			Int("sites", len(sites)).
			Int("insertions", len(pending)).
			Msg("applied rule")
	}

	result.ModifiedContent = current
	result.InsertionCount = len(result.Insertions)
	result.WasModified = result.InsertionCount > 0
	return result, nil
}

// apply splices insertions into content back to front so earlier offsets stay valid.
func apply(content string, ins []Insertion) string {
	if len(ins) == 0 {
		return content
	}
	sorted := make([]Insertion, len(ins))
	copy(sorted, ins)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	out := content
	for _, in := range sorted {
		out = out[:in.Offset] + in.Emoji + out[in.Offset:]
	}
	return out
}
