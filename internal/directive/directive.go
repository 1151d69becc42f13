// SPDX-License-Identifier: MPL-2.0

// Package directive extracts auto-shebang configuration overrides embedded
// in the leading lines of a target script.
//
// The scan is a plain pattern match over text: the script is never parsed,
// interpreted, or executed, which keeps the scan safe on untrusted input
// and independent of the script language's comment syntax.
package directive

import (
	"bufio"
	"regexp"
	"strings"
)

// ScanLimit is the number of leading script lines inspected for directives.
const ScanLimit = 30

// Prefix is the marker introducing an embedded directive.
const Prefix = "auto-shebang-"

// pattern matches "auto-shebang-<key>=<value>" anywhere in a line. The key
// is greedy, so "auto-shebang-probe-dirs-extra=x" yields the unknown key
// "probe-dirs-extra" rather than a spurious probe-dirs match. The value
// runs from the '=' to the first whitespace and may be empty.
var pattern = regexp.MustCompile(regexp.QuoteMeta(Prefix) + `([a-z][a-z-]*)=(\S*)`)

// Directive is one raw key=value override found in a script, unvalidated.
// Value validation is the configuration builder's job.
type Directive struct {
	Key   string
	Value string
}

// Parse scans at most the first ScanLimit lines of text and returns, in
// scan order, every directive whose key is in known. Unknown keys are
// ignored; when a key repeats, callers applying directives in order get
// last-occurrence-wins for free.
func Parse(text string, known []string) []Directive {
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}

	var out []Directive

	// Lines are read without a length cap: minified scripts routinely put
	// their whole payload on one enormous first line, and a directive on a
	// later line of the window must still be seen.
	reader := bufio.NewReader(strings.NewReader(text))
	for lines := 0; lines < ScanLimit; lines++ {
		line, err := reader.ReadString('\n')
		for _, m := range pattern.FindAllStringSubmatch(line, -1) {
			key, value := m[1], m[2]
			if _, ok := knownSet[key]; !ok {
				continue
			}
			out = append(out, Directive{Key: key, Value: value})
		}
		if err != nil {
			break
		}
	}

	return out
}
