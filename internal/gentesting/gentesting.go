// Copyright 2025 Google LLC
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

// Package gentesting provides helpers to test generated C code.
package gentesting

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// NumberLines returns a string where lines are prefixed by their number.
func NumberLines(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	padding := int(math.Ceil(math.Log10(float64(len(lines)))))
	paddingS := fmt.Sprintf("%%0%dd ", padding)
	for i, line := range lines {
		lines[i] = fmt.Sprintf(paddingS, i+1) + line
	}
	return strings.Join(lines, "\n")
}

// Block is the code generated for a single macro.
type Block struct {
	// Macro is the name of the macro given to push_macro.
	Macro string
	// Lines of the block, starting with the push_macro pragma.
	Lines []string
}

var pushRe = regexp.MustCompile(`^#pragma push_macro\("(\w+)"\)$`)

// Blocks splits generated code into the blocks starting with a push_macro
// pragma. Blank lines are dropped.
func Blocks(src string) []Block {
	var blocks []Block
	for _, line := range strings.Split(src, "\n") {
		if m := pushRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Macro: m[1]})
		}
		if len(blocks) == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		last := &blocks[len(blocks)-1]
		last.Lines = append(last.Lines, line)
	}
	return blocks
}
