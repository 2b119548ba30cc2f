package utils

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/oerror"
)

// WriteLInt32 writes a little endian int32 to the buffer.
func WriteLInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

// WriteLInt64 writes a little endian int64 to the buffer.
func WriteLInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

// WriteLFloat32 writes a little endian float32 to the buffer.
func WriteLFloat32(buf *bytes.Buffer, v float32) {
	WriteLInt32(buf, int32(math.Float32bits(v)))
}

// WriteVec3 writes the three components of the vector as little endian float32s.
func WriteVec3(buf *bytes.Buffer, v mgl32.Vec3) {
	for _, c := range v {
		WriteLFloat32(buf, c)
	}
}

// WriteString writes a string prefixed with its length as little endian int32.
func WriteString(buf *bytes.Buffer, s string) {
	WriteLInt32(buf, int32(len(s)))
	buf.WriteString(s)
}

// LInt32 reads a little endian int32 from the buffer.
func LInt32(buf *bytes.Buffer) (int32, error) {
	b := buf.Next(4)
	if len(b) != 4 {
		return 0, oerror.New("unexpected end of buffer reading int32")
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// LInt64 reads a little endian int64 from the buffer.
func LInt64(buf *bytes.Buffer) (int64, error) {
	b := buf.Next(8)
	if len(b) != 8 {
		return 0, oerror.New("unexpected end of buffer reading int64")
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// LFloat32 reads a little endian float32 from the buffer.
func LFloat32(buf *bytes.Buffer) (float32, error) {
	v, err := LInt32(buf)
	return math.Float32frombits(uint32(v)), err
}

// Vec3 reads a vector written by WriteVec3.
func Vec3(buf *bytes.Buffer) (v mgl32.Vec3, err error) {
	for i := range v {
		if v[i], err = LFloat32(buf); err != nil {
			return v, err
		}
	}
	return v, nil
}

// String reads a string written by WriteString.
func String(buf *bytes.Buffer) (string, error) {
	n, err := LInt32(buf)
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > buf.Len() {
		return "", oerror.New("invalid string length %d", n)
	}
	return string(buf.Next(int(n))), nil
}
