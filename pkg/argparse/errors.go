// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/pflag"
)

var (
	// ErrInvalidType is returned when a type name is not in the registry.
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidChoice is returned when a declared choice cannot be
	// converted to the argument's type.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidAction is returned for unsupported parser actions.
	ErrInvalidAction = errors.New("invalid action")
	// ErrUnknownArgument is returned when a default is set for a name the
	// parser does not have.
	ErrUnknownArgument = errors.New("unknown argument")
	// ErrUnknownOption is returned by Parse for an option-like token that
	// matches no declared option spelling.
	ErrUnknownOption = errors.New("unrecognized option")
	// ErrHelp is returned by Parse when -h or --help is given.
	ErrHelp = pflag.ErrHelp
)

// Logf receives construction warnings.
var Logf = log.Printf

// ArgumentError ties an error to the argument it was raised for.
type ArgumentError struct {
	Name string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %s: %v", e.Name, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
