package main

import "errors"

// ErrUnknownMask indicates the configured mask_name does not name a mask
// this binary knows how to build.
var ErrUnknownMask = errors.New("graphgen: unrecognized mask name")
