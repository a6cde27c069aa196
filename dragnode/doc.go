// See dragnode.go for the package contract.
package dragnode
