// See progress.go for the package contract.
package progress
