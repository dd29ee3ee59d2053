// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"os"
	"strconv"
)

// Control values passed through pflag by the token normalizer. Neither can
// be typed on a command line.
const (
	// groupStart opens a new list of values for nargs options.
	groupStart = "\x00group"
	// noValue records an nargs="?" option given without a value.
	noValue = "\x00none"
)

// optionValue implements pflag.Value for one option of a Parser.
type optionValue struct {
	arg *Argument
	set bool
	val any
}

func (v *optionValue) Set(s string) error {
	a := v.arg
	switch a.Action {
	case ActionStoreTrue, ActionStoreFalse:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.val = b == (a.Action == ActionStoreTrue)
	case ActionCount:
		if !v.set {
			// Counting starts from the configured default.
			d, err := a.defaultValue()
			if err != nil {
				return err
			}
			v.val = d
		}
		n, _ := v.val.(int)
		v.val = n + 1
	default:
		if err := v.store(s); err != nil {
			return err
		}
	}
	v.set = true
	return nil
}

func (v *optionValue) store(s string) error {
	a := v.arg
	var x any
	switch s {
	case groupStart:
		switch a.Action {
		case ActionAppend:
			list, _ := v.val.([]any)
			v.val = append(list, []any{})
		case ActionExtend:
			if v.val == nil {
				v.val = []any{}
			}
		default:
			v.val = []any{}
		}
		return nil
	case noValue:
	default:
		var err error
		if x, err = a.convert(s); err != nil {
			return err
		}
	}
	switch {
	case a.Action == ActionExtend:
		list, _ := v.val.([]any)
		v.val = append(list, x)
	case a.Action == ActionAppend && a.Nargs.Multi():
		list, _ := v.val.([]any)
		if len(list) == 0 {
			list = append(list, []any{})
		}
		last := list[len(list)-1].([]any)
		list[len(list)-1] = append(last, x)
		v.val = list
	case a.Action == ActionAppend:
		list, _ := v.val.([]any)
		v.val = append(list, x)
	case a.Nargs.Multi():
		list, _ := v.val.([]any)
		v.val = append(list, x)
	default:
		v.val = x
	}
	return nil
}

func (v *optionValue) String() string {
	return displayDefault(v.arg)
}

func (v *optionValue) Type() string {
	switch v.arg.Action {
	case ActionStoreTrue, ActionStoreFalse:
		return "bool"
	case ActionCount:
		return "count"
	}
	return v.arg.Type.Name
}

func displayDefault(a *Argument) string {
	if !a.hasDef || a.def == nil {
		return ""
	}
	switch a.def {
	case os.Stdin:
		return "<stdin>"
	case os.Stdout:
		return "<stdout>"
	}
	return fmt.Sprint(a.def)
}
