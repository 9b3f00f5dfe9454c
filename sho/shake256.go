package sho

import (
	"golang.org/x/crypto/sha3"
)

const (
	SHAKE256_RATCHET_DOMAIN_TAG = "ZKGroup_Sho_Shake256_Ratchet"
	chainingValueLen            = 64
)

// Shake256 is a Sho flavour over SHAKE256. Absorbed bytes stream straight into
// the sponge; a ratchet squeezes a 64 byte chaining value and restarts the
// sponge from it, so squeezed output never overlaps later state.
type Shake256 struct {
	h sha3.ShakeHash
}

func NewShake256(label []byte) *Shake256 {
	s := &Shake256{h: sha3.NewShake256()}
	s.Absorb(label)
	s.Ratchet()
	return s
}

func (s *Shake256) Absorb(data []byte) {
	s.h.Write(data)
}

func (s *Shake256) Ratchet() {
	var cv [chainingValueLen]byte
	s.h.Read(cv[:])
	s.restart(cv[:])
}

func (s *Shake256) SqueezeAndRatchet(outLen int) []byte {
	out := make([]byte, outLen)
	s.h.Read(out)
	s.Ratchet()
	return out
}

func (s *Shake256) Clone() ShoAPI {
	return &Shake256{h: s.h.Clone()}
}

func (s *Shake256) restart(cv []byte) {
	h := sha3.NewShake256()
	h.Write([]byte(SHAKE256_RATCHET_DOMAIN_TAG))
	h.Write(cv)
	s.h = h
}
