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
	"fmt"
	"reflect"

	"rivaas.dev/routetype/normalize"
	"rivaas.dev/routetype/rawurl"
	"rivaas.dev/routetype/template"
)

// Codec parses request targets into values of the closed route set R and
// renders those values back into canonical targets.
//
// R is usually an interface implemented by each route struct; a concrete
// struct type works for a single-route codec. Register every route before
// the first Parse or Render: registration order is match priority, and a
// Codec is safe for concurrent use only once registration is done.
type Codec[R any] struct {
	converters map[string]Converter
	variants   []*variant
	byType     map[reflect.Type]*variant
}

// New creates an empty codec for the route set R. Construction cannot fail;
// options only extend the converter registry.
func New[R any](opts ...Option) *Codec[R] {
	cfg := config{converters: builtinConverters()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Codec[R]{
		converters: cfg.converters,
		byType:     make(map[reflect.Type]*variant),
	}
}

// variant is one registered route: a compiled template with its slots bound
// to the fields of a concrete route struct.
type variant struct {
	tmpl       *template.Template
	routeType  reflect.Type // as registered: struct, or pointer to struct
	structType reflect.Type
	ptr        bool
	path       []pathStep
	query      []queryStep
}

type pathStep struct {
	literal string
	bind    *binding // nil for literal segments
}

type queryStep struct {
	key     string
	kind    template.ParamKind
	literal string
	bind    *binding
}

// binding connects one template slot to one struct field.
type binding struct {
	field int
	conv  Converter
}

// Register compiles pattern and adds prototype's concrete type as the next
// route variant. The prototype's field values are ignored; only its type
// matters. It must be a struct or pointer to struct, and every exported
// field must be consumed by exactly one slot:
//
//   - {name} binds the exported field whose `route:"…"` tag or name
//     (compared case-insensitively) matches;
//   - {} binds the next exported field not yet bound, in declaration order;
//   - {name type} additionally selects the converter registered under type.
//
// Earlier registrations win when several templates match a target.
func (c *Codec[R]) Register(pattern string, prototype R) error {
	tmpl, err := template.Parse(pattern)
	if err != nil {
		return err
	}

	rt := reflect.TypeOf(prototype)
	if rt == nil {
		return fmt.Errorf("cannot register route template %q: prototype is a nil interface", pattern)
	}
	v := &variant{tmpl: tmpl, routeType: rt, structType: rt}
	if rt.Kind() == reflect.Pointer {
		v.ptr = true
		v.structType = rt.Elem()
	}
	if v.structType.Kind() != reflect.Struct {
		return fmt.Errorf("cannot register %s: route types must be structs or pointers to structs", rt)
	}
	if _, dup := c.byType[rt]; dup {
		return fmt.Errorf("route type %s already registered", rt)
	}

	if err := c.bind(v); err != nil {
		return err
	}

	c.variants = append(c.variants, v)
	c.byType[rt] = v
	return nil
}

// MustRegister is like Register but panics on error, for static route tables.
func (c *Codec[R]) MustRegister(pattern string, prototype R) {
	if err := c.Register(pattern, prototype); err != nil {
		panic(err)
	}
}

// Templates returns the registered template strings in match order.
func (c *Codec[R]) Templates() []string {
	patterns := make([]string, len(c.variants))
	for i, v := range c.variants {
		patterns[i] = v.tmpl.String()
	}
	return patterns
}

// Template returns the template string the route's type was registered with.
// Observability code should prefer it over the raw request target to keep
// label cardinality bounded.
func (c *Codec[R]) Template(route R) (string, error) {
	v, _, err := c.variantFor(route)
	if err != nil {
		return "", err
	}
	return v.tmpl.String(), nil
}

// Parse decodes a request target into a route value.
//
// A non-canonical target (one that decodes to an empty path segment) returns
// a *NormalizationError carrying the canonical target to redirect to. A
// canonical target that no template matches returns ErrNoMatch. Extra query
// parameters never prevent a match; a failed field conversion fails only
// that template and matching continues in registration order.
func (c *Codec[R]) Parse(target string) (R, error) {
	var zero R

	segments, query := rawurl.ParsePathAndQuery(target)
	clean, redirect, ok := normalize.ParsePath(segments, query)
	if !ok {
		return zero, &NormalizationError{Target: redirect}
	}

	qm := NewQueryMap(query)
	for _, v := range c.variants {
		rv, matched := v.match(clean, qm)
		if !matched {
			continue
		}
		if v.ptr {
			return rv.Addr().Interface().(R), nil
		}
		return rv.Interface().(R), nil
	}
	return zero, ErrNoMatch
}

// Render encodes a route value into its canonical request target. The
// value's exact dynamic type selects the template; an unregistered type
// returns an error wrapping ErrNotRegistered.
func (c *Codec[R]) Render(route R) (string, error) {
	v, rv, err := c.variantFor(route)
	if err != nil {
		return "", err
	}
	segments := normalize.RenderPath(v.renderPath(rv))
	return rawurl.RenderPathAndQuery(segments, v.renderQuery(rv)), nil
}

// Path returns the decoded path segments Render would join, dash escaping
// included and percent encoding not yet applied.
func (c *Codec[R]) Path(route R) ([]string, error) {
	v, rv, err := c.variantFor(route)
	if err != nil {
		return nil, err
	}
	return normalize.RenderPath(v.renderPath(rv)), nil
}

// Query returns the decoded query pairs Render would emit. It is nil when
// the route's template declares no query parameters.
func (c *Codec[R]) Query(route R) ([]rawurl.QueryPair, error) {
	v, rv, err := c.variantFor(route)
	if err != nil {
		return nil, err
	}
	return v.renderQuery(rv), nil
}

func (c *Codec[R]) variantFor(route R) (*variant, reflect.Value, error) {
	rt := reflect.TypeOf(route)
	if rt == nil {
		return nil, reflect.Value{}, ErrNilRoute
	}
	v, ok := c.byType[rt]
	if !ok {
		return nil, reflect.Value{}, fmt.Errorf("%w: %T", ErrNotRegistered, route)
	}
	rv := reflect.ValueOf(route)
	if v.ptr {
		if rv.IsNil() {
			return nil, reflect.Value{}, fmt.Errorf("%w: %T", ErrNilRoute, route)
		}
		rv = rv.Elem()
	}
	return v, rv, nil
}

// bind resolves every template slot against the variant's struct fields and
// converter registry, enforcing that each exported field is used exactly once.
func (c *Codec[R]) bind(v *variant) error {
	st := v.structType
	pattern := v.tmpl.String()

	type fieldInfo struct {
		index int
		name  string
		tag   string
		used  bool
	}
	var fields []*fieldInfo
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, &fieldInfo{index: i, name: f.Name, tag: f.Tag.Get("route")})
	}

	next := 0
	resolve := func(slot *template.Slot) (*binding, error) {
		var chosen *fieldInfo
		if slot.Name == "" {
			for next < len(fields) && fields[next].used {
				next++
			}
			if next == len(fields) {
				return nil, fmt.Errorf("route template %q has more slots than %s has exported fields", pattern, st)
			}
			chosen = fields[next]
		} else {
			for _, f := range fields {
				if f.tag == slot.Name || (f.tag == "" && equalFold(f.name, slot.Name)) {
					chosen = f
					break
				}
			}
			if chosen == nil {
				return nil, fmt.Errorf("route template %q: %s has no field for slot %q", pattern, st, slot.Name)
			}
			if chosen.used {
				return nil, fmt.Errorf("route template %q binds field %s.%s twice", pattern, st, chosen.name)
			}
		}
		chosen.used = true

		conv, err := c.converterFor(slot, st.Field(chosen.index).Type, pattern)
		if err != nil {
			return nil, err
		}
		return &binding{field: chosen.index, conv: conv}, nil
	}

	v.path = make([]pathStep, len(v.tmpl.Path))
	for i, seg := range v.tmpl.Path {
		if seg.Slot == nil {
			v.path[i] = pathStep{literal: seg.Literal}
			continue
		}
		b, err := resolve(seg.Slot)
		if err != nil {
			return err
		}
		v.path[i] = pathStep{bind: b}
	}

	v.query = make([]queryStep, len(v.tmpl.Query))
	for i, param := range v.tmpl.Query {
		step := queryStep{key: param.Key, kind: param.Kind, literal: param.Literal}
		if param.Kind == template.ParamSlot {
			b, err := resolve(param.Slot)
			if err != nil {
				return err
			}
			step.bind = b
		}
		v.query[i] = step
	}

	var unused []string
	for _, f := range fields {
		if !f.used {
			unused = append(unused, f.name)
		}
	}
	if len(unused) > 0 {
		return fmt.Errorf("route template %q does not use fields %v of %s", pattern, unused, st)
	}
	return nil
}

// converterFor picks the converter for a slot bound to fieldType. Slots
// without an explicit type use the field's own kind; an explicit built-in
// type name must agree with the field so narrowing can never happen silently.
func (c *Codec[R]) converterFor(slot *template.Slot, fieldType reflect.Type, pattern string) (Converter, error) {
	name := slot.Type
	if name == "" {
		name = kindName(fieldType)
		if name == "" {
			return nil, fmt.Errorf("route template %q: no built-in converter for field type %s; name a registered converter in the slot", pattern, fieldType)
		}
	}
	conv, ok := c.converters[name]
	if !ok {
		return nil, fmt.Errorf("route template %q: no converter registered for type %q", pattern, name)
	}
	if slot.Type != "" && isBuiltinConverter(conv) {
		if fieldName := kindName(fieldType); fieldName != slot.Type {
			return nil, fmt.Errorf("route template %q: slot type %q does not match field type %s", pattern, slot.Type, fieldType)
		}
	}
	return conv, nil
}

func isBuiltinConverter(c Converter) bool {
	switch c.(type) {
	case stringConverter, boolConverter, intConverter, uintConverter, floatConverter:
		return true
	}
	return false
}

// equalFold is ASCII-only case folding; route slot names and Go field names
// stay within ASCII in practice, and this keeps lookups allocation-free.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// match tries the variant against a canonical decoded target. The path must
// be consumed exactly; query parameters beyond the template's are ignored.
func (v *variant) match(segments []string, qm QueryMap) (reflect.Value, bool) {
	if len(segments) != len(v.path) {
		return reflect.Value{}, false
	}
	rv := reflect.New(v.structType).Elem()
	for i, step := range v.path {
		if step.bind == nil {
			if segments[i] != step.literal {
				return reflect.Value{}, false
			}
			continue
		}
		if !step.bind.set(rv, segments[i]) {
			return reflect.Value{}, false
		}
	}
	for _, step := range v.query {
		switch step.kind {
		case template.ParamFlag:
			if !qm.Has(step.key) {
				return reflect.Value{}, false
			}
		case template.ParamLiteral:
			value, ok := qm.Single(step.key)
			if !ok || value != step.literal {
				return reflect.Value{}, false
			}
		case template.ParamSlot:
			value, ok := qm.Single(step.key)
			if !ok || !step.bind.set(rv, value) {
				return reflect.Value{}, false
			}
		}
	}
	return rv, true
}

// renderPath emits the decoded segments for a route value, before dash
// escaping and percent encoding.
func (v *variant) renderPath(rv reflect.Value) []string {
	if len(v.path) == 0 {
		return nil
	}
	segments := make([]string, len(v.path))
	for i, step := range v.path {
		if step.bind == nil {
			segments[i] = step.literal
			continue
		}
		segments[i] = step.bind.conv.Render(rv.Field(step.bind.field).Interface())
	}
	return segments
}

// renderQuery emits the decoded query pairs for a route value; nil when the
// template has none, so routes without query parameters render without "?".
func (v *variant) renderQuery(rv reflect.Value) []rawurl.QueryPair {
	if len(v.query) == 0 {
		return nil
	}
	pairs := make([]rawurl.QueryPair, len(v.query))
	for i, step := range v.query {
		switch step.kind {
		case template.ParamFlag:
			pairs[i] = rawurl.Flag(step.key)
		case template.ParamLiteral:
			pairs[i] = rawurl.Pair(step.key, step.literal)
		case template.ParamSlot:
			pairs[i] = rawurl.Pair(step.key, step.bind.conv.Render(rv.Field(step.bind.field).Interface()))
		}
	}
	return pairs
}

// set parses one decoded piece into the bound field. Any failure, including
// a custom converter returning a value the field cannot hold, reports false
// and fails the template under trial.
func (b *binding) set(structValue reflect.Value, s string) bool {
	parsed, ok := b.conv.Parse(s)
	if !ok {
		return false
	}
	field := structValue.Field(b.field)
	switch field.Kind() {
	case reflect.String:
		if v, ok := parsed.(string); ok {
			field.SetString(v)
			return true
		}
	case reflect.Bool:
		if v, ok := parsed.(bool); ok {
			field.SetBool(v)
			return true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, ok := parsed.(int64); ok && !field.OverflowInt(v) {
			field.SetInt(v)
			return true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v, ok := parsed.(uint64); ok && !field.OverflowUint(v) {
			field.SetUint(v)
			return true
		}
	case reflect.Float32, reflect.Float64:
		if v, ok := parsed.(float64); ok && !field.OverflowFloat(v) {
			field.SetFloat(v)
			return true
		}
	}
	if parsed == nil {
		return false
	}
	rv := reflect.ValueOf(parsed)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return true
	}
	return false
}
