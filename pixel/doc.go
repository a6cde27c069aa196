// Package pixel is part of graphgen, an offline code generator for
// pixel-labeling and image-morphology decision procedures.
//
//	go get github.com/graphgen-dev/graphgen/pixel
package pixel
