package custody

import (
	"reflect"
	"regexp"

	"github.com/iov-one/custody/errors"
)

// Msg is a request to take an action (make a state transition). It is just
// the request, and must be validated by the Handlers. All authentication
// information is provided by the hosting environment.
type Msg interface {
	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content. It does not
	// access the state.
	Validate() error
}

// IsValidPath is the regexp every message path must match.
var IsValidPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Tx represent the data sent from the user to the ledger.
// It carries the actual message to be processed.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// NewTx wraps a single message into a transaction.
func NewTx(msg Msg) Tx {
	return &singleMsgTx{msg: msg}
}

type singleMsgTx struct {
	msg Msg
}

func (tx *singleMsgTx) GetMsg() (Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no message")
	}
	return tx.msg, nil
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	if tx == nil {
		return "(missing)"
	}
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}

	// Destination must be a pointer to the same type as the message.
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "invalid destination: not a pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", msg, destination)
	}
	dest.Elem().Set(src)

	if v, ok := destination.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrap(err, "invalid message")
		}
	}
	return nil
}
