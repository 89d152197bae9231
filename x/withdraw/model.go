package withdraw

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/registry"
)

const bucketName = "request"

// Validate ensures the request is valid.
func (r *Request) Validate() error {
	if r.ID == 0 {
		return errors.Wrap(errors.ErrModel, "id")
	}
	if r.AccountID == 0 {
		return errors.Wrap(errors.ErrModel, "account id")
	}
	if err := r.Requester.Validate(); err != nil {
		return errors.Wrap(err, "requester")
	}
	for i, a := range r.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval %d", i)
		}
		if a.Equals(r.Requester) {
			return errors.Wrapf(errors.ErrModel, "approval %d by the requester", i)
		}
		for _, prev := range r.Approvals[:i] {
			if prev.Equals(a) {
				return errors.Wrapf(errors.ErrDuplicate, "approval %d", i)
			}
		}
	}
	return nil
}

// HasApproval returns true if given party approved the request.
func (r *Request) HasApproval(party custody.Address) bool {
	for _, a := range r.Approvals {
		if a.Equals(party) {
			return true
		}
	}
	return false
}

// Approve records the approval of given party. The request becomes approved
// once every owner except the requester approved it.
func (r *Request) Approve(party custody.Address, owners int) {
	r.Approvals = append(r.Approvals, party)
	if len(r.Approvals) == quorum(owners) {
		r.Approved = true
	}
}

// quorum is the number of approvals needed by a request of an account with
// given number of owners: everyone but the requester.
func quorum(owners int) int {
	return owners - 1
}

// RequestKey returns the primary key of a request. Requests are partitioned
// by account.
func RequestKey(accountID, requestID uint64) []byte {
	key := make([]byte, 0, 16)
	key = append(key, registry.AccountKey(accountID)...)
	return append(key, orm.EncodeSequence(requestID)...)
}

// Controller gives access to withdrawal requests.
type Controller struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewController returns a controller operating on the request bucket.
func NewController() *Controller {
	return &Controller{
		bucket: orm.NewModelBucket(bucketName, &Request{}),
		seq:    orm.NewSequence(bucketName, "id"),
	}
}

// Create assigns the next request id and stores the request.
func (c *Controller) Create(db custody.KVStore, r *Request) (uint64, error) {
	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "request id")
	}
	r.ID = id
	if err := c.Save(db, r); err != nil {
		return 0, err
	}
	return id, nil
}

// Save stores an existing request.
func (c *Controller) Save(db custody.KVStore, r *Request) error {
	if _, err := c.bucket.Put(db, RequestKey(r.AccountID, r.ID), r); err != nil {
		return errors.Wrap(err, "cannot store request")
	}
	return nil
}

// Delete removes the request. It returns ErrInvalidRequest if the request
// does not exist.
func (c *Controller) Delete(db custody.KVStore, accountID, requestID uint64) error {
	err := c.bucket.Delete(db, RequestKey(accountID, requestID))
	if errors.ErrNotFound.Is(err) {
		return errors.Wrapf(ErrInvalidRequest, "request %d of account %d", requestID, accountID)
	}
	return err
}

// Request loads a single request. ErrInvalidRequest is returned if the
// account has no request with given id.
func (c *Controller) Request(db custody.ReadOnlyKVStore, accountID, requestID uint64) (*Request, error) {
	var r Request
	err := c.bucket.One(db, RequestKey(accountID, requestID), &r)
	switch {
	case err == nil:
		return &r, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrInvalidRequest, "request %d of account %d", requestID, accountID)
	default:
		return nil, err
	}
}

// Requests returns all pending requests of an account, ordered by id.
func (c *Controller) Requests(db custody.ReadOnlyKVStore, accountID uint64) ([]*Request, error) {
	var res []*Request
	if _, err := c.bucket.PrefixScan(db, registry.AccountKey(accountID), &res); err != nil {
		return nil, err
	}
	return res, nil
}
