// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The protoc-gen-seaorm binary is a protoc plugin that turns seaorm.*
// extension options into SeaORM entity models, active enums, async
// storage traits, and garde-validated domain types (spec.md §1).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/seaormgen/protoc-gen-seaorm/internal/orchestrator"
	"github.com/seaormgen/protoc-gen-seaorm/protogen"
)

func main() {
	var flags flag.FlagSet
	opts := &protogen.Options{
		ParamFunc: flags.Set,
	}
	verbose := os.Getenv("SEAORM_GEN_VERBOSE") != ""

	protogen.Run(opts, func(gen *protogen.Plugin) error {
		if err := orchestrator.Generate(gen); err != nil {
			return err
		}
		if verbose {
			for _, f := range gen.OutputFiles() {
				fmt.Fprintf(os.Stderr, "protoc-gen-seaorm: wrote %s\n", f.GetName())
			}
		}
		return nil
	})
}
