/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object, stored under the
"_c:<package>" key. Configuration is loaded from the genesis file and can be
read by handlers during execution.

Not being able to get a configuration value is a critical condition for the
application. Handlers must return the error and not fall back to defaults.
*/
package gconf
