package parser

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
)

const DefaultTimeout = 4000 * time.Millisecond

// Parser turns one source file into the routes declared in it. A failure
// of any kind yields an empty result; callers never see an error.
type Parser interface {
	Parse(ctx context.Context, file string) []models.Route
}

// BinaryName is the file name of the route parser executable for goos.
func BinaryName(goos string) string {
	if goos == "windows" {
		return "parse_routes.exe"
	}
	return "parse_routes"
}

// ResolveBinary returns the parser executable inside dir for this platform.
func ResolveBinary(dir string) string {
	return filepath.Join(dir, BinaryName(runtime.GOOS))
}

// ExecParser runs an external executable as `<Binary> <file>` and decodes
// the routes it prints on stdout.
type ExecParser struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

func NewExecParser(binary string, timeout time.Duration) *ExecParser {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecParser{Binary: binary, Timeout: timeout}
}

func (p *ExecParser) Parse(ctx context.Context, file string) []models.Route {
	routes, err := p.run(ctx, file)
	if err != nil {
		logger.Debug("Route parser failed for %s: %v", file, err)
		return []models.Route{}
	}
	return routes
}

func (p *ExecParser) run(ctx context.Context, file string) ([]models.Route, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, p.Args...), file)
	cmd := exec.CommandContext(ctx, p.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %v", timeout)
		}
		return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return Decode(stdout.Bytes())
}

// ErrMalformed is returned by Decode when the output is not a list of
// route records.
var ErrMalformed = errors.New("malformed parser output")

// Decode accepts either one JSON array of route objects or one route
// object per line. `null` is read as an empty list, which is what the
// parser prints for a file without routes.
func Decode(out []byte) ([]models.Route, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrMalformed)
	}

	var routes []models.Route
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &routes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var r models.Route
			if err := json.Unmarshal(line, &r); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			routes = append(routes, r)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		if string(trimmed) == "null" {
			return []models.Route{}, nil
		}
		return nil, fmt.Errorf("%w: not a list of routes", ErrMalformed)
	}

	for i, r := range routes {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: record %d missing method or line", ErrMalformed, i)
		}
	}
	if routes == nil {
		routes = []models.Route{}
	}
	return routes, nil
}

// Locate picks the parser executable: the configured path when set, then
// a route_parser directory next to the running binary, then $PATH.
func Locate(configured string) string {
	if configured != "" {
		return configured
	}
	if exe, err := os.Executable(); err == nil {
		candidate := ResolveBinary(filepath.Join(filepath.Dir(exe), "route_parser"))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if path, err := exec.LookPath(BinaryName(runtime.GOOS)); err == nil {
		return path
	}
	return BinaryName(runtime.GOOS)
}
