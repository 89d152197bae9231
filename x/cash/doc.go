/*
Package cash keeps the balances of parties outside of custody.

Funds released by a withdrawal leave the custody accounts and are credited to
the wallet of the requester. A wallet is created on the first credit.
*/
package cash
