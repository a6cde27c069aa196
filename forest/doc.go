// See forest.go for the package contract.
package forest
