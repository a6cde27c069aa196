// See config.go for the package contract.
package ganconfig
