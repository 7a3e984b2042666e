// Copyright 2026 The javap-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javap-go/javap/classfile"
	"github.com/javap-go/javap/javap"
	"github.com/javap-go/javap/log"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "javap <classfile>",
		Short: "Disassemble a compiled Java class file",
		Long:  "javap decodes a .class file and prints its constant pool, fields, methods, and bytecode in javap -v's format.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disassemble(args[0], verbose)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("javap-go version 1.0.0")
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decode warnings to stderr")
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func disassemble(path string, verbose bool) error {
	level := log.LevelError
	if verbose {
		level = log.LevelWarn
	}
	logger := log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level))

	cf, err := classfile.Parse(path, &classfile.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("javap: %w", err)
	}
	if err := javap.Fprint(os.Stdout, cf); err != nil {
		return fmt.Errorf("javap: %w", err)
	}
	return nil
}
