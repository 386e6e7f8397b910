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

package operation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is how many runes of unchanged text surround each change.
const diffContext = 24

// renderDiff prints one line per changed span with a little context.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	var b strings.Builder
	for i, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}

		var prev, next string
		if i > 0 && diffs[i-1].Type == diffmatchpatch.DiffEqual {
			prev = lastRunes(diffs[i-1].Text, diffContext)
		}
		if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffEqual {
			next = firstRunes(diffs[i+1].Text, diffContext)
		}

		sign := "+"
		if d.Type == diffmatchpatch.DiffDelete {
			sign = "-"
		}
		fmt.Fprintf(&b, "  %s …%s[%s%s]%s…\n", sign, flatten(prev), sign, d.Text, flatten(next))
	}
	return strings.TrimRight(b.String(), "\n")
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func flatten(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
}
