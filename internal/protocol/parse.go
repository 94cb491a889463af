package protocol

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Type Kind `json:"type"`
}

// Parse decodes a raw client payload into its Inbound variant.
//
// Payloads that are not JSON objects, or whose fields have the wrong types,
// fail with ErrMalformed. A missing discriminator, or one naming a message
// only the server may send, fails with ErrUnknownKind.
func Parse(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case KindCursor:
		return decode[Cursor](data)
	case KindReaction:
		return decode[Reaction](data)
	case KindFirework:
		return decode[Firework](data)
	case KindName:
		return decode[Rename](data)
	case KindPrivateMessage:
		return decode[PrivateMessage](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
}

func decode[T Inbound](data []byte) (Inbound, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, msg.Kind(), err)
	}
	return msg, nil
}
