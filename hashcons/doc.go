// See hashcons.go for the package contract.
package hashcons
