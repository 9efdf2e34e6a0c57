package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// ToolchainAdapter abstracts the external disassembler/assembler pair that
// turns dex files into listing trees and back.
type ToolchainAdapter interface {
	// Disassemble writes the listings of dex into outDir.
	Disassemble(ctx context.Context, dex, outDir m.Path) (output string, err error)

	// Assemble builds outDex from the listings in dir.
	Assemble(ctx context.Context, dir, outDex m.Path) (output string, err error)
}

// ToolchainConfig locates the toolchain binaries.
type ToolchainConfig struct {
	Java     string
	Baksmali string
	Smali    string
	APILevel int
	Timeout  time.Duration
}

// CommandRunner executes a command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// LocalToolchainAdapter runs baksmali/smali jars through java.
type LocalToolchainAdapter struct {
	cfg ToolchainConfig
	run CommandRunner
}

// NewLocalToolchainAdapter constructs a LocalToolchainAdapter. A zero timeout
// defaults to five minutes per invocation.
func NewLocalToolchainAdapter(cfg ToolchainConfig) *LocalToolchainAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	if cfg.Java == "" {
		cfg.Java = "java"
	}

	return &LocalToolchainAdapter{cfg: cfg, run: runCommand}
}

// WithRunner replaces the command runner.
func (a *LocalToolchainAdapter) WithRunner(run CommandRunner) *LocalToolchainAdapter {
	a.run = run
	return a
}

// Disassemble runs `baksmali d -a API dex -o outDir`.
func (a *LocalToolchainAdapter) Disassemble(ctx context.Context, dex, outDir m.Path) (string, error) {
	return a.invoke(ctx, a.cfg.Baksmali, "d", string(dex), string(outDir))
}

// Assemble runs `smali a -a API dir -o outDex`.
func (a *LocalToolchainAdapter) Assemble(ctx context.Context, dir, outDex m.Path) (string, error) {
	return a.invoke(ctx, a.cfg.Smali, "a", string(dir), string(outDex))
}

func (a *LocalToolchainAdapter) invoke(ctx context.Context, jar, verb, in, out string) (string, error) {
	if jar == "" {
		return "", fmt.Errorf("toolchain jar for %q not configured", verb)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	args := []string{"-jar", jar, verb}
	if a.cfg.APILevel > 0 {
		args = append(args, "-a", strconv.Itoa(a.cfg.APILevel))
	}

	args = append(args, in, "-o", out)

	output, err := a.run(ctx, a.cfg.Java, args...)
	if err != nil {
		return output, fmt.Errorf("%s %s %s: %w", jar, verb, in, err)
	}

	return output, nil
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String() + stderr.String(), err
}
