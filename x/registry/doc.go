/*
Package registry implements shared-custody accounts.

An account is a balance jointly owned by a fixed set of parties. The owner set
is decided at creation and never changes. Every party is indexed, so that the
accounts a party belongs to can be listed and ownership can be checked.

A party can be named as a co-owner of a limited number of accounts. The limit
is configured with gconf under the "registry" key. The creator of an account
is not subject to the limit.
*/
package registry
