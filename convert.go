// Copyright 2025 The Rivaas Authors
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

package routetype

import (
	"reflect"
	"strconv"
)

// Converter translates between decoded route pieces and typed field values.
//
// Parse reports false when the piece does not represent a value of the
// converter's type; this is not an error, it fails only the route template
// under trial and matching moves on to the next one. Render is the inverse
// and must produce a piece Parse accepts, so rendered routes re-parse to
// equal values.
//
// A custom converter's Parse must return a value assignable to the struct
// field its slot is bound to; a mismatch fails the template the same way a
// Parse false does.
type Converter interface {
	Parse(s string) (any, bool)
	Render(v any) string
}

// builtinConverters returns the converter registry every codec starts from,
// keyed by logical type name. Options may add to or override it.
func builtinConverters() map[string]Converter {
	m := map[string]Converter{
		"string":  stringConverter{},
		"bool":    boolConverter{},
		"int":     intConverter{bits: strconv.IntSize},
		"int8":    intConverter{bits: 8},
		"int16":   intConverter{bits: 16},
		"int32":   intConverter{bits: 32},
		"int64":   intConverter{bits: 64},
		"uint":    uintConverter{bits: strconv.IntSize},
		"uint8":   uintConverter{bits: 8},
		"uint16":  uintConverter{bits: 16},
		"uint32":  uintConverter{bits: 32},
		"uint64":  uintConverter{bits: 64},
		"float32": floatConverter{bits: 32},
		"float64": floatConverter{bits: 64},
	}
	return m
}

// kindName maps a struct field type to the logical converter name used when
// a slot carries no explicit type. Unsupported kinds map to "".
func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int:
		return "int"
	case reflect.Int8:
		return "int8"
	case reflect.Int16:
		return "int16"
	case reflect.Int32:
		return "int32"
	case reflect.Int64:
		return "int64"
	case reflect.Uint:
		return "uint"
	case reflect.Uint8:
		return "uint8"
	case reflect.Uint16:
		return "uint16"
	case reflect.Uint32:
		return "uint32"
	case reflect.Uint64:
		return "uint64"
	case reflect.Float32:
		return "float32"
	case reflect.Float64:
		return "float64"
	default:
		return ""
	}
}

type stringConverter struct{}

func (stringConverter) Parse(s string) (any, bool) { return s, true }

func (stringConverter) Render(v any) string { return reflect.ValueOf(v).String() }

// boolConverter accepts exactly "true" and "false". This is deliberately
// stricter than strconv.ParseBool: "1", "t" and "TRUE" fail the template.
type boolConverter struct{}

func (boolConverter) Parse(s string) (any, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return nil, false
}

func (boolConverter) Render(v any) string {
	if reflect.ValueOf(v).Bool() {
		return "true"
	}
	return "false"
}

// intConverter parses base-10 integers with the bound field's bit size, so
// overflow fails the template instead of wrapping.
type intConverter struct {
	bits int
}

func (c intConverter) Parse(s string) (any, bool) {
	i, err := strconv.ParseInt(s, 10, c.bits)
	return i, err == nil
}

func (c intConverter) Render(v any) string {
	return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
}

type uintConverter struct {
	bits int
}

func (c uintConverter) Parse(s string) (any, bool) {
	u, err := strconv.ParseUint(s, 10, c.bits)
	return u, err == nil
}

func (c uintConverter) Render(v any) string {
	return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
}

type floatConverter struct {
	bits int
}

func (c floatConverter) Parse(s string) (any, bool) {
	f, err := strconv.ParseFloat(s, c.bits)
	return f, err == nil
}

func (c floatConverter) Render(v any) string {
	return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, c.bits)
}
