// See ruleset.go and errors.go for the package contract.
package ruleset
