package utils

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

// ReferenceCodec turns internal serial ids into opaque reference codes for
// client display. Codes are reversible with the same salt, never persisted.
type ReferenceCodec struct {
	hash *hashids.HashID
}

func NewReferenceCodec(salt string) (*ReferenceCodec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	hash, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("initialize reference codec: %w", err)
	}
	return &ReferenceCodec{hash: hash}, nil
}

func (r *ReferenceCodec) Encode(id int64) (string, error) {
	code, err := r.hash.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("encode reference: %w", err)
	}
	return code, nil
}

func (r *ReferenceCodec) Decode(code string) (int64, error) {
	ids, err := r.hash.DecodeInt64WithError(code)
	if err != nil {
		return 0, fmt.Errorf("decode reference: %w", err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("invalid reference code")
	}
	return ids[0], nil
}
