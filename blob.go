package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

// Blob layout: tag ‖ nonce ‖ AES-256-GCM(plaintext ‖ zero padding ‖ padLen),
// padLen a big endian u32.

func (g *GroupSecretParams) blobCipher() (cipher.AEAD, error) {
	kdf := hkdf.New(sha512.New, g.blobKey[:], []byte(GROUP_BLOB_KEY_DOMAIN_TAG), nil)
	key := make([]byte, 32)
	_, err := io.ReadFull(kdf, key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (g *GroupSecretParams) EncryptBlob(randomness RandomnessBytes, plaintext []byte) ([]byte, error) {
	return g.EncryptBlobWithPadding(randomness, plaintext, 0)
}

// EncryptBlobWithPadding appends padLen zero bytes before encrypting so
// blobs of different lengths can share one ciphertext size.
func (g *GroupSecretParams) EncryptBlobWithPadding(randomness RandomnessBytes, plaintext []byte, padLen uint32) ([]byte, error) {
	aead, err := g.blobCipher()
	if err != nil {
		return nil, err
	}
	nonce := newSho(GROUP_ENCRYPT_BLOB_DOMAIN_TAG, randomness).NextBytes(blobNonceLen)

	padded := make([]byte, len(plaintext)+int(padLen)+blobPaddingLengthBytes)
	copy(padded, plaintext)
	binary.BigEndian.PutUint32(padded[len(padded)-blobPaddingLengthBytes:], padLen)

	out := make([]byte, 0, 1+blobNonceLen+len(padded)+aead.Overhead())
	out = append(out, RESERVED_TAG)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, padded, nil), nil
}

// DecryptBlob strips the padding. Any authentication failure is reported as
// ErrVerificationFailure.
func (g *GroupSecretParams) DecryptBlob(blob []byte) ([]byte, error) {
	if len(blob) < 1+blobNonceLen || blob[0] != RESERVED_TAG {
		return nil, errors.Wrap(ErrInvalidEncoding, "blob: header")
	}
	aead, err := g.blobCipher()
	if err != nil {
		return nil, err
	}
	nonce, sealed := blob[1:1+blobNonceLen], blob[1+blobNonceLen:]
	padded, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrVerificationFailure
	}

	if len(padded) < blobPaddingLengthBytes {
		return nil, ErrVerificationFailure
	}
	padLen := binary.BigEndian.Uint32(padded[len(padded)-blobPaddingLengthBytes:])
	body := padded[:len(padded)-blobPaddingLengthBytes]
	if uint64(padLen) > uint64(len(body)) {
		return nil, ErrVerificationFailure
	}
	return body[:len(body)-int(padLen)], nil
}
