// Package wirejson is a minimal concrete realization of the abstract
// decoder the core treats as an external collaborator: it drives
// encoding/json's streaming tokenizer and pushes one visitor call per
// JSON token, so cmd/eventcore has something real to point a Cursor at.
// It is deliberately not "the" wire format — the core never imports it.
package wirejson

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

type frameKind int

const (
	arrayFrame frameKind = iota
	objectFrame
)

type frame struct {
	kind       frameKind
	expectName bool
}

// Decoder implements cursor.Decoder over a JSON document, applying the
// wire-format delegation rule for numbers that don't fit a machine
// scalar: integers outside int64/uint64 range surface as a string
// tagged big_integer, and fractional/exponent literals surface as a
// double (rounded to the nearest float64) when strconv.ParseFloat accepts
// them, or a string tagged big_decimal when they fall outside float64's
// range.
type Decoder struct {
	dec   *json.Decoder
	stack []frame
}

// New wraps r as a Decoder.
func New(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Step reads JSON tokens and pushes the corresponding visitor calls until
// a push signals stop (returns false) or the document is exhausted,
// matching cursor.Decoder and the stop-on-false convention every other
// Decoder in this module honors.
func (d *Decoder) Step(v visitor.Visitor) (more bool, err error) {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, errors.Wrap(err, "wirejson: token")
		}

		if !d.pushToken(tok, v, visitor.Context{Byte: d.dec.InputOffset()}) {
			return true, nil
		}
	}
}

func (d *Decoder) pushToken(tok json.Token, v visitor.Visitor, ctx visitor.Context) bool {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d.push(objectFrame)
			return v.BeginObject(0, semtag.None, ctx)
		case '[':
			d.push(arrayFrame)
			return v.BeginArray(0, semtag.None, ctx)
		case '}':
			d.pop()
			return v.EndObject(ctx)
		case ']':
			d.pop()
			return v.EndArray(ctx)
		}
		return true
	case string:
		if d.atObjectKey() {
			d.markValueNext()
			return v.Name(t, ctx)
		}
		d.afterValue()
		return v.String(t, semtag.None, ctx)
	case bool:
		d.afterValue()
		return v.Bool(t, semtag.None, ctx)
	case nil:
		d.afterValue()
		return v.Null(semtag.None, ctx)
	case json.Number:
		defer d.afterValue()
		return d.pushNumber(t, v, ctx)
	}
	return true
}

func (d *Decoder) pushNumber(n json.Number, v visitor.Visitor, ctx visitor.Context) bool {
	s := n.String()

	if looksIntegral(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v.Int64(i, semtag.None, ctx)
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v.Uint64(u, semtag.None, ctx)
		}
		return v.String(s, semtag.BigInteger, ctx)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return v.Double(f, semtag.None, ctx)
	}
	return v.String(s, semtag.BigDecimal, ctx)
}

func looksIntegral(s string) bool {
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' {
			return false
		}
	}
	return true
}

func (d *Decoder) push(k frameKind) {
	d.stack = append(d.stack, frame{kind: k, expectName: k == objectFrame})
}

func (d *Decoder) pop() {
	if len(d.stack) > 0 {
		d.stack = d.stack[:len(d.stack)-1]
	}
	d.afterValue()
}

func (d *Decoder) atObjectKey() bool {
	if len(d.stack) == 0 {
		return false
	}
	top := d.stack[len(d.stack)-1]
	return top.kind == objectFrame && top.expectName
}

func (d *Decoder) markValueNext() {
	if len(d.stack) > 0 {
		d.stack[len(d.stack)-1].expectName = false
	}
}

func (d *Decoder) afterValue() {
	if len(d.stack) > 0 && d.stack[len(d.stack)-1].kind == objectFrame {
		d.stack[len(d.stack)-1].expectName = true
	}
}
