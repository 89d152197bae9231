package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
//
// Models are protobuf messages. Their fields carry protobuf struct tags and
// they are serialized with the gogo protobuf table marshaler.
type Model interface {
	proto.Message
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Marshal serializes given message.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads the serialized representation into given message.
func Unmarshal(raw []byte, dest proto.Message) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrType, "unmarshal %T: %s", dest, err)
	}
	return nil
}
