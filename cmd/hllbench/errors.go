package main

import "errors"

var errUnknownMixer = errors.New("unknown mixer name")
