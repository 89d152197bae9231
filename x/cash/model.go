package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/orm"
)

const bucketName = "wallet"

// Wallet is the balance of a single party, stored under the party address.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Validate implements orm.Model. Any balance is valid.
func (m *Wallet) Validate() error {
	return nil
}

// NewWalletBucket returns a bucket storing wallets by owner address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Wallet{})
}
