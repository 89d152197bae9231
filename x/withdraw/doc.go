/*
Package withdraw implements the authorization of withdrawals from
shared-custody accounts.

Any owner of an account can request a withdrawal of funds the account holds.
The request must then be approved by every other owner. Once approved, the
requester executes it: the account is debited, the request is removed and the
funds are handed to a FundsSink. If the sink fails the whole execution fails.

Request ids come from one sequence shared by all accounts. Requests are
stored under the account id followed by the request id, so listing the
requests of an account is a prefix scan.
*/
package withdraw
