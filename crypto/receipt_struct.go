package crypto

import (
	"encoding/binary"

	"github.com/MixinNetwork/zkgroup-go/sho"
	"github.com/bwesterb/go-ristretto"
)

type ReceiptSerialBytes [16]byte

// ReceiptStruct is the attribute set of a receipt credential. The serial is
// hidden from the issuer; expiration and level are known to it.
type ReceiptStruct struct {
	Serial         ReceiptSerialBytes
	ExpirationTime uint64
	Level          uint64
}

func NewReceiptStruct(serial ReceiptSerialBytes, expiration, level uint64) ReceiptStruct {
	return ReceiptStruct{Serial: serial, ExpirationTime: expiration, Level: level}
}

// M1 packs expiration and level into one scalar: expiration ‖ level, both
// little endian.
func (r ReceiptStruct) M1() *ristretto.Point {
	return scalarMul(CredentialsSystemParams().GM[0], r.m1())
}

func (r ReceiptStruct) m1() *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], r.ExpirationTime)
	binary.LittleEndian.PutUint64(buf[8:16], r.Level)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func (r ReceiptStruct) M2() *ristretto.Point {
	return receiptSerialPoint(r.Serial)
}

func receiptSerialPoint(serial ReceiptSerialBytes) *ristretto.Point {
	m2 := sho.New([]byte(RECEIPT_SERIAL_DOMAIN_TAG), serial[:]).NextScalar()
	return scalarMul(CredentialsSystemParams().GM[1], m2)
}
