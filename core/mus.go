package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go/varint"
)

// ErrTruncatedData indicates serialized passage bytes that end mid-value.
var ErrTruncatedData = errors.New("truncated passage data")

// PassageMUS serializes passages in the MUS binary format. All numeric
// fields are varint-encoded; timestamps are stored with microsecond
// precision. The format has no versioning: changing the Passage shape
// requires re-ingesting the corpus.
var PassageMUS = passageSerializer{}

type passageSerializer struct{}

// Size returns the number of bytes Marshal will write for p.
func (passageSerializer) Size(p Passage) (size int) {
	size = varint.SizeUint64(uint64(p.Id))
	size += sizeString(p.Document)
	size += varint.SizeUint64(uint64(p.Page))
	size += sizeString(p.Content)
	size += varint.SizeUint64(uint64(len(p.Vector)))
	for _, f := range p.Vector {
		size += varint.SizeUint64(uint64(math.Float32bits(f)))
	}
	size += varint.SizeUint64(uint64(p.InsertedAt.UnixMicro()))
	return size
}

// Marshal writes p into bs, which must be at least Size(p) bytes long.
// Returns the number of bytes written.
func (passageSerializer) Marshal(p Passage, bs []byte) (n int) {
	n = varint.MarshalUint64(uint64(p.Id), bs)
	n += marshalString(p.Document, bs[n:])
	n += varint.MarshalUint64(uint64(p.Page), bs[n:])
	n += marshalString(p.Content, bs[n:])
	n += varint.MarshalUint64(uint64(len(p.Vector)), bs[n:])
	for _, f := range p.Vector {
		n += varint.MarshalUint64(uint64(math.Float32bits(f)), bs[n:])
	}
	n += varint.MarshalUint64(uint64(p.InsertedAt.UnixMicro()), bs[n:])
	return n
}

// Unmarshal reads a passage from bs. Returns the passage, the number of
// bytes consumed, and an error if the data is malformed.
func (passageSerializer) Unmarshal(bs []byte) (p Passage, n int, err error) {
	id, n, err := varint.UnmarshalUint64(bs)
	if err != nil {
		return p, n, err
	}
	p.Id = ID(id)

	var n1 int
	p.Document, n1, err = unmarshalString(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}

	page, n1, err := varint.UnmarshalUint64(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.Page = int(page)

	p.Content, n1, err = unmarshalString(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}

	dim, n1, err := varint.UnmarshalUint64(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.Vector = make([]float32, dim)
	for i := range p.Vector {
		bits, n2, err := varint.UnmarshalUint64(bs[n:])
		n += n2
		if err != nil {
			return p, n, err
		}
		p.Vector[i] = math.Float32frombits(uint32(bits))
	}

	micros, n1, err := varint.UnmarshalUint64(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.InsertedAt = time.UnixMicro(int64(micros)).UTC()

	return p, n, nil
}

func sizeString(s string) int {
	return varint.SizeUint64(uint64(len(s))) + len(s)
}

func marshalString(s string, bs []byte) (n int) {
	n = varint.MarshalUint64(uint64(len(s)), bs)
	n += copy(bs[n:], s)
	return n
}

func unmarshalString(bs []byte) (s string, n int, err error) {
	length, n, err := varint.UnmarshalUint64(bs)
	if err != nil {
		return "", n, err
	}
	if uint64(len(bs)-n) < length {
		return "", n, ErrTruncatedData
	}
	s = string(bs[n : n+int(length)])
	return s, n + int(length), nil
}
