// See emit.go for the two-pass emitter and accessor.go for the pixel
// access / action text collaborators.
package codegen
