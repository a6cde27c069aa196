// See odt.go for the package contract.
package odt
