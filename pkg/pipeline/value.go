package pipeline

// Kind is the tag of a Value.
type Kind int

// Value kinds.
const (
	KindUnit Kind = iota // no value
	KindText
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is the data passed from one command to the next.
// The zero Value is Unit.
type Value struct {
	kind Kind
	text string
	data []byte
}

// Unit returns an empty value.
func Unit() Value {
	return Value{}
}

// Text returns a value holding decoded text.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bytes returns a value holding raw bytes.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, data: b}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsUnit reports whether v carries nothing.
func (v Value) IsUnit() bool {
	return v.kind == KindUnit
}

// Text returns the text held by v. ok is false when v is not a text value.
func (v Value) Text() (s string, ok bool) {
	return v.text, v.kind == KindText
}

// Bytes returns the raw bytes held by v. ok is false when v is not a bytes value.
func (v Value) Bytes() (b []byte, ok bool) {
	return v.data, v.kind == KindBytes
}

// Encode returns the content of v as bytes, text being encoded as UTF-8.
// It returns nil for Unit.
func (v Value) Encode() []byte {
	switch v.kind {
	case KindText:
		return []byte(v.text)
	case KindBytes:
		return v.data
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindBytes:
		return string(v.data)
	default:
		return ""
	}
}
