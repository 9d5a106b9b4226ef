/*
 *
 * jsminify - JavaScript minification for build pipelines
 * Copyright (C) 2024 Dreampie
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package log

import (
	"fmt"
	"strings"
)

type token struct {
	key, value string
	// inside is the opening bracket the value was enclosed in, if any
	inside rune
}

// tokenize splits a `key=value,key=[v1,v2]` configuration line.
func tokenize(line string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(line); i++ {
		eq := strings.IndexByte(line[i:], '=')
		if eq < 0 {
			return nil, fmt.Errorf("key `%s` with no value", line[i:])
		}
		t := token{key: line[i : i+eq]}
		i += eq + 1

		if i < len(line) && line[i] == '[' {
			end := strings.IndexByte(line[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("value of key `%s` has no closing `]`", t.key)
			}
			t.value, t.inside = line[i+1:i+end], '['
			i += end + 1
			if i < len(line) && line[i] != ',' {
				return nil, fmt.Errorf("unexpected `%c` after the value of key `%s`", line[i], t.key)
			}
		} else {
			end := strings.IndexByte(line[i:], ',')
			if end < 0 {
				end = len(line) - i
			}
			t.value = line[i : i+end]
			i += end
		}

		if t.value == "" {
			return nil, fmt.Errorf("key `%s=` with no value", t.key)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
