/*
Package errors implements the error handling used across the custody ledger.

Every failure is categorized by a root error. Root errors are declared with
Register and carry a unique numeric code, so that clients can tell "already
approved" apart from "not your request" without parsing messages. Popular
root errors are declared in this package, extensions declare their own
(see x/registry and x/withdraw).

Create instances at the point of failure with Wrap or Wrapf so that a stack
trace is attached:

	return errors.Wrapf(errors.ErrNotFound, "account %d", id)

Test the kind of an error with the Is method of the root error:

	if registry.ErrNotOwner.Is(err) { ... }

Once you have an error, use fmt to get more context

	%s is just the error message
	%+v is the message followed by the stack trace
*/
package errors
