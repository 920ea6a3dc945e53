package streamnet

import (
	"eventcore/internal/semtag"
	"eventcore/internal/visitor"
)

// captureVisitor records the calls that matter for these tests; every
// other method ignores its arguments and returns true (keep pushing).
type captureVisitor struct {
	names          []string
	byteStringExts []uint64
}

func (c *captureVisitor) BeginObject(int, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) EndObject(visitor.Context) bool                   { return true }
func (c *captureVisitor) BeginArray(int, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) EndArray(visitor.Context) bool                   { return true }
func (c *captureVisitor) Name(value string, _ visitor.Context) bool {
	c.names = append(c.names, value)
	return true
}
func (c *captureVisitor) Null(semtag.Tag, visitor.Context) bool           { return true }
func (c *captureVisitor) Bool(bool, semtag.Tag, visitor.Context) bool     { return true }
func (c *captureVisitor) Int64(int64, semtag.Tag, visitor.Context) bool   { return true }
func (c *captureVisitor) Uint64(uint64, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) Half(uint16, semtag.Tag, visitor.Context) bool   { return true }
func (c *captureVisitor) Double(float64, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) String(string, semtag.Tag, visitor.Context) bool  { return true }
func (c *captureVisitor) ByteString([]byte, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) ByteStringExt(_ []byte, extTag uint64, _ visitor.Context) bool {
	c.byteStringExts = append(c.byteStringExts, extTag)
	return true
}
func (c *captureVisitor) TypedArray(visitor.TypedArray, semtag.Tag, visitor.Context) bool { return true }
func (c *captureVisitor) BeginMultiDim([]uint64, semtag.Tag, visitor.Context) bool         { return true }
func (c *captureVisitor) EndMultiDim(visitor.Context) bool                                 { return true }
func (c *captureVisitor) Flush() bool                                                      { return true }
