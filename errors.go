/*
 * errors.go, part of goxtal.
 *
 * Copyright 2024 The goxtal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package xtal

import "fmt"

//Error is the interface implemented by the errors of this package.
//Decorate allows building a rough trace of the calls the error went
//through before reaching the caller.
type Error interface {
	error
	Decorate(string) []string
}

//CError is the concrete error type of the package. The zero value is
//usable; fill msg with a description of what went wrong.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

//Decorate adds dec to the decoration trace of the error and returns the
//resulting trace. An empty dec only queries the trace.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//cError builds a CError with a formatted message and the name of the
//function reporting it.
func cError(caller, format string, a ...interface{}) *CError {
	err := new(CError)
	err.msg = fmt.Sprintf(format, a...)
	err.Decorate(caller)
	return err
}

//errDecorate adds the caller's name to err if it is a package Error,
//and wraps it into one otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return cError(caller, "%s", err.Error())
	}
	err2.Decorate(caller)
	return err2
}
