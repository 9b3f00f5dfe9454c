package sho

import (
	"encoding/binary"
	"hash"

	"github.com/dchest/blake2b"
)

const (
	blake2bAbsorbTag  = 0x00
	blake2bSqueezeTag = 0x01
	blake2bRatchetTag = 0x02
)

// Blake2b is a Sho flavour over keyed BLAKE2b-512. The chaining value is the
// key; absorbed bytes are buffered until the next ratchet so the object can
// be cloned.
type Blake2b struct {
	cv  [chainingValueLen]byte
	buf []byte
}

func NewBlake2bSho(label []byte) *Blake2b {
	s := &Blake2b{}
	s.Absorb(label)
	s.Ratchet()
	return s
}

func (s *Blake2b) Absorb(data []byte) {
	s.buf = append(s.buf, data...)
}

func (s *Blake2b) Ratchet() {
	h := s.keyed()
	h.Write(s.buf)
	h.Write([]byte{blake2bAbsorbTag})
	copy(s.cv[:], h.Sum(nil))
	s.wipeBuffer()
}

func (s *Blake2b) SqueezeAndRatchet(outLen int) []byte {
	if len(s.buf) > 0 {
		s.Ratchet()
	}
	out := make([]byte, 0, outLen+blake2b.Size)
	var counter [9]byte
	counter[8] = blake2bSqueezeTag
	for i := uint64(0); len(out) < outLen; i++ {
		binary.LittleEndian.PutUint64(counter[:8], i)
		h := s.keyed()
		h.Write(counter[:])
		out = h.Sum(out)
	}

	var next [9]byte
	binary.LittleEndian.PutUint64(next[:8], uint64(outLen))
	next[8] = blake2bRatchetTag
	h := s.keyed()
	h.Write(next[:])
	copy(s.cv[:], h.Sum(nil))
	return out[:outLen]
}

func (s *Blake2b) Clone() ShoAPI {
	c := &Blake2b{cv: s.cv}
	c.buf = append([]byte(nil), s.buf...)
	return c
}

func (s *Blake2b) keyed() hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: blake2b.Size, Key: s.cv[:]})
	if err != nil {
		panic(err)
	}
	return h
}

func (s *Blake2b) wipeBuffer() {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.buf = s.buf[:0]
}
