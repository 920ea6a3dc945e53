package cursor

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/kr/text"

	"eventcore/internal/event"
	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

// assertKinds compares got against want, failing with a pretty.Diff when
// they mismatch rather than a single "got N events" summary.
func assertKinds(t *testing.T, got, want []event.Kind) {
	t.Helper()
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("event kinds mismatch:\n%s", text.Indent(pretty.Sprint(diff), "  "))
	}
}

// scriptedDecoder replays a fixed sequence of visitor calls, honoring the
// stop-signal convention: it stops pushing as soon as a call returns
// false, resuming from the next scripted call on the following Step.
type scriptedDecoder struct {
	script []func(v visitor.Visitor) bool
	pos    int
}

func (d *scriptedDecoder) Step(v visitor.Visitor) (more bool, err error) {
	for d.pos < len(d.script) {
		call := d.script[d.pos]
		d.pos++
		if !call(v) {
			return true, nil
		}
	}
	return false, nil
}

var ctx = visitor.Context{}

func TestCursorOverSimpleArray(t *testing.T) {
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool { return v.BeginArray(3, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.String("a", semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Null(semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.EndArray(ctx) },
	}}
	c := New(d)

	wantKinds := []event.Kind{event.BeginArray, event.Uint64, event.String, event.Null, event.EndArray}
	for i, wantKind := range wantKinds {
		if err := c.Next(); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		e, ok := c.Current()
		if !ok {
			t.Fatalf("Current() #%d: not ok", i)
		}
		if e.Kind != wantKind {
			t.Errorf("event #%d kind = %v, want %v", i, e.Kind, wantKind)
		}
	}
	if err := c.Next(); err != nil {
		t.Fatalf("final Next(): %v", err)
	}
	if !c.Done() {
		t.Error("cursor should be Done() after the decoder is exhausted")
	}
}

func TestCursorTypedArrayExpansion(t *testing.T) {
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool {
			return v.TypedArray(visitor.NewTypedArray([]uint8{7, 8, 9}), semtag.None, ctx)
		},
	}}
	c := New(d)

	type want struct {
		kind event.Kind
		u64  uint64
	}
	wants := []want{
		{event.BeginArray, 0},
		{event.Uint64, 7},
		{event.Uint64, 8},
		{event.Uint64, 9},
		{event.EndArray, 0},
	}
	for i, w := range wants {
		if err := c.Next(); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		e, _ := c.Current()
		if e.Kind != w.kind {
			t.Errorf("event #%d kind = %v, want %v", i, e.Kind, w.kind)
		}
		if e.Kind == event.Uint64 && e.Uint64Val != w.u64 {
			t.Errorf("event #%d value = %d, want %d", i, e.Uint64Val, w.u64)
		}
	}
}

func TestCursorMultiDimExpansion(t *testing.T) {
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool { return v.BeginMultiDim([]uint64{2, 3}, semtag.RowMajor, ctx) },
		func(v visitor.Visitor) bool { return v.BeginArray(0, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.EndArray(ctx) },
		func(v visitor.Visitor) bool { return v.EndMultiDim(ctx) },
	}}
	c := New(d)

	type want struct {
		kind   event.Kind
		length int
		u64    uint64
	}
	wants := []want{
		{kind: event.BeginArray, length: 2},
		{kind: event.BeginArray, length: 2},
		{kind: event.Uint64, u64: 2},
		{kind: event.Uint64, u64: 3},
		{kind: event.EndArray},
		{kind: event.BeginArray, length: 0},
		{kind: event.Uint64, u64: 1},
		{kind: event.EndArray},
		{kind: event.EndArray},
	}
	for i, w := range wants {
		if err := c.Next(); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		e, _ := c.Current()
		if e.Kind != w.kind {
			t.Errorf("event #%d kind = %v, want %v", i, e.Kind, w.kind)
		}
		if e.Kind == event.Uint64 && e.Uint64Val != w.u64 {
			t.Errorf("event #%d value = %d, want %d", i, e.Uint64Val, w.u64)
		}
	}
	if err := c.Next(); err != nil {
		t.Fatal(err)
	}
	if !c.Done() {
		t.Error("cursor should be Done() once the decoder and all expansions are exhausted")
	}
}

func TestFilterViewSkipsNameAndValue(t *testing.T) {
	// {"a":1,"b":2,"c":3} filtered to skip name "b" and its value.
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool { return v.BeginObject(3, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Name("a", ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Name("b", ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(2, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Name("c", ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(3, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.EndObject(ctx) },
	}}
	c := New(d)

	skipB := false
	pred := func(e event.Event, ctx visitor.Context) bool {
		if e.Kind == event.Name && e.StringView == "b" {
			skipB = true
			return false
		}
		if skipB {
			skipB = false
			return false
		}
		return true
	}

	if err := c.Next(); err != nil {
		t.Fatal(err)
	}
	fv := NewFilterView(c, pred)

	wantKinds := []event.Kind{event.BeginObject, event.Name, event.Uint64, event.Name, event.Uint64, event.EndObject}
	wantStrings := []string{"", "a", "", "c", "", ""}
	for i, wantKind := range wantKinds {
		e, ok := fv.Current()
		if !ok {
			t.Fatalf("event #%d: FilterView.Current() not ok", i)
		}
		if e.Kind != wantKind {
			t.Errorf("event #%d kind = %v, want %v", i, e.Kind, wantKind)
		}
		if wantStrings[i] != "" && e.StringView != wantStrings[i] {
			t.Errorf("event #%d string = %q, want %q", i, e.StringView, wantStrings[i])
		}
		if err := fv.Next(); err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
	}
}

func TestFilterChainIsConjunction(t *testing.T) {
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool { return v.BeginArray(4, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(2, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(3, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(4, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.EndArray(ctx) },
	}}
	c := New(d)
	if err := c.Next(); err != nil {
		t.Fatal(err)
	}

	isScalar := func(e event.Event, _ visitor.Context) bool { return e.Kind == event.Uint64 }
	isEven := func(e event.Event, _ visitor.Context) bool { return e.Uint64Val%2 == 0 }

	fv := NewFilterView(c, isScalar).Filter(isEven)

	var got []uint64
	for !fv.Done() {
		e, ok := fv.Current()
		if !ok {
			break
		}
		got = append(got, e.Uint64Val)
		if err := fv.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("filtered values = %v, want [2 4]", got)
	}
}

func TestReadToForwardsBalancedSubTree(t *testing.T) {
	d := &scriptedDecoder{script: []func(visitor.Visitor) bool{
		func(v visitor.Visitor) bool { return v.BeginArray(2, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.BeginArray(1, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.Uint64(2, semtag.None, ctx) },
		func(v visitor.Visitor) bool { return v.EndArray(ctx) },
		func(v visitor.Visitor) bool { return v.EndArray(ctx) },
	}}
	c := New(d)
	if err := c.Next(); err != nil {
		t.Fatal(err)
	}

	sink := &recordingVisitor{}
	if err := c.ReadTo(sink); err != nil {
		t.Fatal(err)
	}
	want := []event.Kind{event.BeginArray, event.Uint64, event.BeginArray, event.Uint64, event.EndArray, event.EndArray}
	assertKinds(t, sink.kinds, want)
}

// recordingVisitor implements visitor.Visitor by recording every call's
// kind, for asserting the exact sequence ReadTo forwards.
type recordingVisitor struct {
	kinds []event.Kind
}

func (r *recordingVisitor) BeginObject(int, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.BeginObject)
	return true
}
func (r *recordingVisitor) EndObject(visitor.Context) bool {
	r.kinds = append(r.kinds, event.EndObject)
	return true
}
func (r *recordingVisitor) BeginArray(int, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.BeginArray)
	return true
}
func (r *recordingVisitor) EndArray(visitor.Context) bool {
	r.kinds = append(r.kinds, event.EndArray)
	return true
}
func (r *recordingVisitor) Name(string, visitor.Context) bool { return true }
func (r *recordingVisitor) Null(semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Null)
	return true
}
func (r *recordingVisitor) Bool(bool, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Bool)
	return true
}
func (r *recordingVisitor) Int64(int64, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Int64)
	return true
}
func (r *recordingVisitor) Uint64(uint64, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Uint64)
	return true
}
func (r *recordingVisitor) Half(uint16, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Half)
	return true
}
func (r *recordingVisitor) Double(float64, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.Double)
	return true
}
func (r *recordingVisitor) String(string, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.String)
	return true
}
func (r *recordingVisitor) ByteString([]byte, semtag.Tag, visitor.Context) bool {
	r.kinds = append(r.kinds, event.ByteString)
	return true
}
func (r *recordingVisitor) ByteStringExt([]byte, uint64, visitor.Context) bool {
	r.kinds = append(r.kinds, event.ByteString)
	return true
}
func (r *recordingVisitor) TypedArray(visitor.TypedArray, semtag.Tag, visitor.Context) bool {
	return true
}
func (r *recordingVisitor) BeginMultiDim([]uint64, semtag.Tag, visitor.Context) bool { return true }
func (r *recordingVisitor) EndMultiDim(visitor.Context) bool                        { return true }
func (r *recordingVisitor) Flush() bool                                             { return true }
