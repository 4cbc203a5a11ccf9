package cmd

import "github.com/ardnew/props/props"

// Sentinel errors returned by commands. They are [props.Error] values, so
// they carry structured attributes and compare with errors.Is.
var (
	ErrWriteOutput = props.NewError("write output")
	ErrWriteConfig = props.NewError("write configuration file")
	ErrFileExists  = props.NewError("file exists (use --force to overwrite)")
	ErrServe       = props.NewError("serve")
)
