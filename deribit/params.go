// Copyright (c) 2025 cdrappi

package deribit

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type valueKind int

const (
	stringKind valueKind = iota
	intKind
	floatKind
	decimalKind
	boolKind
	listKind
)

// Value is a single request parameter. Endpoint parameters are strings,
// numbers, booleans or lists of strings; an explicit variant keeps the
// signing-string renderer exhaustive.
type Value struct {
	kind valueKind

	str  string
	num  int64
	real float64
	dec  decimal.Decimal
	flag bool
	list []string
}

func String(v string) Value { return Value{kind: stringKind, str: v} }

func Int(v int64) Value { return Value{kind: intKind, num: v} }

func Float(v float64) Value { return Value{kind: floatKind, real: v} }

func Dec(v decimal.Decimal) Value { return Value{kind: decimalKind, dec: v} }

func Bool(v bool) Value { return Value{kind: boolKind, flag: v} }

func List(vs ...string) Value { return Value{kind: listKind, list: vs} }

// text returns the scalar rendering shared by the signing string and the
// transmitted form values. The server recomputes the signature from the
// transmitted values, so the two must agree byte for byte.
func (v Value) text() string {
	switch v.kind {
	case stringKind:
		return v.str
	case intKind:
		return strconv.FormatInt(v.num, 10)
	case floatKind:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case decimalKind:
		return v.dec.String()
	case boolKind:
		return strconv.FormatBool(v.flag)
	case listKind:
		// List elements are concatenated with no separator.
		return strings.Join(v.list, "")
	}
	return ""
}

// Params holds the parameters of a single API request.
type Params map[string]Value

// form encodes the parameters the way they are transmitted: one value per
// key, except lists which repeat their key once per element.
func (p Params) form() url.Values {
	values := make(url.Values)
	for k, v := range p {
		if v.kind == listKind {
			for _, e := range v.list {
				values.Add(k, e)
			}
			continue
		}
		values.Set(k, v.text())
	}
	return values
}
