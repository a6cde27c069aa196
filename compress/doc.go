// See compress.go for the package contract.
package compress
