// Copyright 2026 The protoc-gen-seaorm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protogen provides the plugin harness: reading a
// CodeGeneratorRequest from stdin, resolving its file descriptors against
// a descriptor pool, and writing a CodeGeneratorResponse to stdout.
//
// It is adapted from the teacher's own protogen/protogen.go, trimmed to
// what this plugin actually needs: there is no Go import-path/package-name
// resolution (this plugin emits Rust, not Go packages) and no Go-AST
// reformatting pass, since generated Rust source has no such pass to run.
// What is kept is the overall Run/New/Response shape and the descriptor
// walk, generalized so a caller can discover every message/oneof/enum/
// service reachable from a file the way protoc-gen-go's protogen.File
// does (spec.md §3, §4.9).
package protogen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/pluginpb"
)

// Options are optional parameters to New, mirroring the teacher's
// protogen.Options without the Go-specific ImportRewriteFunc.
type Options struct {
	// ParamFunc, if non-nil, is called with each key=value pair parsed out
	// of the request's comma-separated Parameter string (the portion of
	// --seaorm_out=key=value,... after the colon).
	ParamFunc func(name, value string) error
}

// Run reads a CodeGeneratorRequest from os.Stdin, invokes f, and writes
// the resulting CodeGeneratorResponse to os.Stdout. It prints to
// os.Stderr and exits nonzero only when the request itself could not be
// read or decoded, its descriptors could not be resolved, a plugin
// parameter was rejected by ParamFunc, or the response could not be
// encoded or written — spec.md §6:
// "exit code zero on success (including successful reports of generator
// errors inside the response); nonzero only for I/O or catastrophic
// decode failures before a response could be formed."
func Run(opts *Options, f func(*Plugin) error) {
	if err := run(opts, f); err != nil {
		fmt.Fprintf(os.Stderr, "protoc-gen-seaorm: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *Options, f func(*Plugin) error) error {
	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	gen, err := New(req, opts)
	if err != nil {
		return err
	}
	if err := f(gen); err != nil {
		gen.Fatal(err)
	}
	resp := gen.Response()
	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// A Plugin is a protoc plugin invocation: the parsed request, every file
// it carries (available for cross-file lookups), and the subset of those
// marked Generate per spec.md §3's Request/FileDescriptor split.
type Plugin struct {
	Request *pluginpb.CodeGeneratorRequest
	Files   []*File

	filesByName map[string]*File

	fatal error
	errs  []error
	out   []*pluginpb.CodeGeneratorResponse_File
}

// File mirrors one FileDescriptorProto entry, resolved against the
// request's own descriptor pool.
type File struct {
	Desc     protoreflect.FileDescriptor
	Generate bool
}

// New resolves every file in the request against a private descriptor
// pool (spec.md §4.1's dynamic-reflection path shares this same
// resolution step via internal/options, run separately against its own
// pool so option-extraction stays decoupled from file walking) and marks
// the subset named in FileToGenerate.
func New(req *pluginpb.CodeGeneratorRequest, opts *Options) (*Plugin, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.ParamFunc != nil {
		for _, param := range strings.Split(req.GetParameter(), ",") {
			if param == "" {
				continue
			}
			name, value := param, ""
			if i := strings.IndexByte(param, '='); i >= 0 {
				name, value = param[:i], param[i+1:]
			}
			if err := opts.ParamFunc(name, value); err != nil {
				return nil, err
			}
		}
	}

	toGenerate := make(map[string]bool, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		toGenerate[name] = true
	}

	reg := &protoregistry.Files{}
	gen := &Plugin{
		Request:     req,
		filesByName: make(map[string]*File, len(req.GetProtoFile())),
	}
	for _, fdp := range req.GetProtoFile() {
		fd, err := protodesc.NewFile(fdp, reg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", fdp.GetName(), err)
		}
		if err := reg.RegisterFile(fd); err != nil {
			return nil, fmt.Errorf("registering %s: %w", fdp.GetName(), err)
		}
		file := &File{Desc: fd, Generate: toGenerate[fdp.GetName()]}
		gen.Files = append(gen.Files, file)
		gen.filesByName[fdp.GetName()] = file
	}
	return gen, nil
}

// FileByName returns the file with the given path, for cross-file lookups
// (e.g. an embedded or enum field whose type lives in an imported file).
func (gen *Plugin) FileByName(name string) (*File, bool) {
	f, ok := gen.filesByName[name]
	return f, ok
}

// AddFile records one emitted output file in the response.
func (gen *Plugin) AddFile(name, content string) {
	gen.out = append(gen.out, &pluginpb.CodeGeneratorResponse_File{
		Name:    proto.String(name),
		Content: proto.String(content),
	})
}

// AddError records an entity-scoped error (spec.md §7): it is surfaced in
// the response's Error string alongside whatever files were already
// emitted, rather than aborting the run the way Fatal does.
func (gen *Plugin) AddError(err error) {
	if err != nil {
		gen.errs = append(gen.errs, err)
	}
}

// Fatal records a process-scoped failure: no files will be included in
// the response, only the error string (spec.md §7's Decode-class
// propagation — still surfaced through the plugin wire protocol rather
// than a nonzero exit, matching the teacher's own gen.Error contract).
func (gen *Plugin) Fatal(err error) {
	if gen.fatal == nil {
		gen.fatal = err
	}
}

// OutputFiles returns every file recorded so far via AddFile, for a
// caller that wants to trace what was emitted (spec.md §2's
// SEAORM_GEN_VERBOSE) without waiting for Response to assemble the wire
// message.
func (gen *Plugin) OutputFiles() []*pluginpb.CodeGeneratorResponse_File {
	return gen.out
}

// Response assembles the CodeGeneratorResponse: a Fatal error suppresses
// all output, while entity-scoped errors are joined into the Error string
// without discarding anything already emitted.
func (gen *Plugin) Response() *pluginpb.CodeGeneratorResponse {
	if gen.fatal != nil {
		return &pluginpb.CodeGeneratorResponse{Error: proto.String(gen.fatal.Error())}
	}
	resp := &pluginpb.CodeGeneratorResponse{File: gen.out}
	if joined := errors.Join(gen.errs...); joined != nil {
		resp.Error = proto.String(joined.Error())
	}
	return resp
}
