package withdraw

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
)

// Request is a withdrawal waiting for approvals or execution.
type Request struct {
	ID        uint64          `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	AccountID uint64          `protobuf:"varint,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Requester custody.Address `protobuf:"bytes,3,opt,name=requester,proto3" json:"requester,omitempty"`
	Amount    uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Approvals lists the distinct owners who approved, in order.
	Approvals []custody.Address `protobuf:"bytes,5,rep,name=approvals,proto3" json:"approvals,omitempty"`
	// Approved is set once every owner except the requester approved.
	Approved  bool  `protobuf:"varint,6,opt,name=approved,proto3" json:"approved,omitempty"`
	CreatedAt int64 `protobuf:"varint,7,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

func (m *Request) Reset()         { *m = Request{} }
func (m *Request) String() string { return proto.CompactTextString(m) }
func (*Request) ProtoMessage()    {}

// RequestMsg asks to withdraw funds from an account.
type RequestMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *RequestMsg) Reset()         { *m = RequestMsg{} }
func (m *RequestMsg) String() string { return proto.CompactTextString(m) }
func (*RequestMsg) ProtoMessage()    {}

// ApproveMsg is a vote of an owner for a withdrawal request.
type ApproveMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	RequestID uint64 `protobuf:"varint,2,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

// WithdrawMsg executes an approved withdrawal request.
type WithdrawMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	RequestID uint64 `protobuf:"varint,2,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

// WithdrawRequested is published when a withdrawal request is created.
type WithdrawRequested struct {
	Requester custody.Address `protobuf:"bytes,1,opt,name=requester,proto3" json:"requester,omitempty"`
	Amount    uint64          `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	AccountID uint64          `protobuf:"varint,3,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	RequestID uint64          `protobuf:"varint,4,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	Time      int64           `protobuf:"varint,5,opt,name=time,proto3" json:"time,omitempty"`
}

func (m *WithdrawRequested) Reset()         { *m = WithdrawRequested{} }
func (m *WithdrawRequested) String() string { return proto.CompactTextString(m) }
func (*WithdrawRequested) ProtoMessage()    {}

// Kind implements custody.Event.
func (*WithdrawRequested) Kind() string { return "WithdrawRequested" }

// WithdrawCompleted is published when a withdrawal is executed.
type WithdrawCompleted struct {
	RequestID uint64 `protobuf:"varint,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	AccountID uint64 `protobuf:"varint,2,opt,name=account_id,json=accountId,proto3" json:"account_id,omitempty"`
	Time      int64  `protobuf:"varint,3,opt,name=time,proto3" json:"time,omitempty"`
}

func (m *WithdrawCompleted) Reset()         { *m = WithdrawCompleted{} }
func (m *WithdrawCompleted) String() string { return proto.CompactTextString(m) }
func (*WithdrawCompleted) ProtoMessage()    {}

// Kind implements custody.Event.
func (*WithdrawCompleted) Kind() string { return "WithdrawCompleted" }
