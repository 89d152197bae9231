/*
Package crypto implements ed25519 keys identifying custody parties.

A party address is derived from its public key. Private keys are stored in
files with raw binary content, readable only by the owner.
*/
package crypto
