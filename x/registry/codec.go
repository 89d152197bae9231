package registry

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
)

// Account is a pool of funds jointly owned by a fixed set of parties.
type Account struct {
	// Owners is the ordered owner set. The creator is always the last one.
	Owners []custody.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	// Balance is the amount of funds held in custody.
	Balance uint64 `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
	// CreatedAt is the unix time of the account creation.
	CreatedAt int64 `protobuf:"varint,3,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// Configuration is the registry configuration stored with gconf.
type Configuration struct {
	// MaxMemberships is the number of accounts a party can be named a
	// co-owner of.
	MaxMemberships uint32 `protobuf:"varint,1,opt,name=max_memberships,json=maxMemberships,proto3" json:"max_memberships,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// CreateAccountMsg creates an account owned by the listed parties and the
// signer.
type CreateAccountMsg struct {
	// Owners are the co-owners of the new account. The signer must not be
	// listed.
	Owners []custody.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}

// DepositMsg adds funds to an account.
type DepositMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

// AccountCreated is published when a new account is created.
type AccountCreated struct {
	Owners    []custody.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	AccountID uint64            `protobuf:"varint,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Time      int64             `protobuf:"varint,3,opt,name=time,proto3" json:"time,omitempty"`
}

func (m *AccountCreated) Reset()         { *m = AccountCreated{} }
func (m *AccountCreated) String() string { return proto.CompactTextString(m) }
func (*AccountCreated) ProtoMessage()    {}

// Kind implements custody.Event.
func (*AccountCreated) Kind() string { return "AccountCreated" }

// DepositAmount is published when funds are deposited to an account.
type DepositAmount struct {
	Depositor custody.Address `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor,omitempty"`
	AccountID uint64          `protobuf:"varint,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Amount    uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Time      int64           `protobuf:"varint,4,opt,name=time,proto3" json:"time,omitempty"`
}

func (m *DepositAmount) Reset()         { *m = DepositAmount{} }
func (m *DepositAmount) String() string { return proto.CompactTextString(m) }
func (*DepositAmount) ProtoMessage()    {}

// Kind implements custody.Event.
func (*DepositAmount) Kind() string { return "DepositAmount" }
