/*
 * Synacor VM - Configuration file parser
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <switch> | <option> <whitespace> <value>
 * <switch> ::= <string>
 * <option> ::= <string>
 * <value> ::= rest of line, trimmed
 */

const (
	TypeSwitch = 1 + iota // Option used only to set a flag.
	TypeOption            // Option takes a value.
)

// Option creation list.
type optionDef struct {
	set func(string) error
	ty  int
}

var options = map[string]optionDef{}

var lineNumber int

// Register an option that takes no value.
func RegisterSwitch(name string, fn func(string) error) {
	options[strings.ToUpper(name)] = optionDef{set: fn, ty: TypeSwitch}
}

// Register an option that takes one value.
func RegisterOption(name string, fn func(string) error) {
	options[strings.ToUpper(name)] = optionDef{set: fn, ty: TypeOption}
}

// Apply one configuration line.
func applyLine(line string) error {
	if index := strings.Index(line, "#"); index >= 0 {
		line = line[:index]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, value := line, ""
	if index := strings.IndexAny(line, " \t"); index >= 0 {
		name, value = line[:index], strings.TrimSpace(line[index+1:])
	}
	hasValue := value != ""

	opt, ok := options[strings.ToUpper(name)]
	if !ok {
		return errors.New("unknown option: " + name)
	}

	switch opt.ty {
	case TypeSwitch:
		if hasValue {
			return errors.New("option takes no value: " + name)
		}
		return opt.set("")
	case TypeOption:
		if !hasValue {
			return errors.New("option requires a value: " + name)
		}
		return opt.set(value)
	}
	return errors.New("bad option type: " + name)
}

// LoadConfig reads configuration lines from r and applies each
// through its registered handler.
func LoadConfig(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNumber = 0
	for scanner.Scan() {
		lineNumber++
		if err := applyLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	return scanner.Err()
}

// LoadConfigFile opens and applies the configuration file at path.
func LoadConfigFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}
