// Package buildinfo emits a small JSON artifact describing the finished build.
//
// The integration captures the declared output mode and site URL during the
// configuration hook, then deposits build-info.json at the root of the build
// output once the build is done. The artifact answers "what was built and
// when"; it has no runtime component.
//
// Emission is strictly contained: a failure here may never abort or alter the
// outcome of the host build. The write protocol is therefore expressed as an
// EmitResult value rather than a returned error.
package buildinfo

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/astrildev/cli/internal/config"
	"github.com/astrildev/cli/internal/fsurl"
	"github.com/astrildev/cli/internal/integration"
)

// ArtifactName is the fixed artifact filename, joined to the validated output
// directory. It is never derived at runtime, which forecloses path injection.
const ArtifactName = "build-info.json"

const (
	// componentName prefixes every diagnostic line.
	componentName = "build-info"

	// framework identifies the host ecosystem in the artifact.
	framework = "astro"

	// unknownOutput is the sentinel for a project that declares no output mode.
	unknownOutput = "unknown"
)

// Payload is the artifact content. Every field is a compile-time constant, a
// value captured from the project's own declared configuration, or a locally
// generated timestamp — never environment, filesystem, or network data.
// Field order is the serialized key order.
type Payload struct {
	Framework string  `json:"framework"`
	Output    string  `json:"output"`
	Site      *string `json:"site"`
	BuiltAt   string  `json:"builtAt"`
}

// snapshot holds the configuration captured at setup time. That data is not
// available from the done hook, so it is carried on the integration instance:
// one writer (ConfigSetup), one reader (Emit), in host-guaranteed order.
type snapshot struct {
	output string
	site   string
}

// EmitStatus is the terminal state of one emission attempt.
type EmitStatus int

const (
	// EmitSkipped means the output directory failed validation; nothing was written.
	EmitSkipped EmitStatus = iota

	// EmitWritten means the artifact was written successfully.
	EmitWritten

	// EmitFailed means the write was attempted and failed. From the host's
	// point of view this is equivalent to EmitSkipped; only the log severity
	// differs.
	EmitFailed
)

func (s EmitStatus) String() string {
	switch s {
	case EmitSkipped:
		return "skipped"
	case EmitWritten:
		return "written"
	case EmitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EmitResult reports the outcome of one emission attempt.
type EmitResult struct {
	Status EmitStatus

	// Path is the absolute destination path, set once the destination was
	// composed (written or failed attempts).
	Path string

	// Err is the underlying write error when Status is EmitFailed.
	Err error
}

// Integration implements the build-info lifecycle plugin. Construct one fresh
// instance per build; the snapshot is not shared across build invocations.
type Integration struct {
	snap   snapshot
	logger *log.Logger

	// Injection points for tests.
	now       func() time.Time
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Compile-time assertion: *Integration satisfies the hook contract.
var _ integration.Integration = (*Integration)(nil)

// New creates the build-info integration logging through the given logger.
func New(logger *log.Logger) *Integration {
	return &Integration{
		logger:    logger.WithPrefix(componentName),
		now:       time.Now,
		writeFile: os.WriteFile,
	}
}

// Name identifies the integration in diagnostics.
func (i *Integration) Name() string {
	return componentName
}

// ConfigSetup captures the declared output mode and site URL for later use.
// No validation, no defaulting, no I/O; defaulting happens at emission time.
// Idempotent: if the host calls setup again, the later values win.
func (i *Integration) ConfigSetup(cfg *config.Project) error {
	i.snap = snapshot{
		output: cfg.Output,
		site:   cfg.Site,
	}
	return nil
}

// BuildDone emits the artifact. The returned error is always nil: every
// failure mode is contained inside Emit.
func (i *Integration) BuildDone(ctx integration.DoneContext) error {
	i.Emit(ctx.Dir)
	return nil
}

// Emit resolves and validates the output directory, builds the payload, and
// performs a single best-effort overwrite write of the artifact.
//
// An unresolvable or missing directory is a skip, not a failure: one warning
// diagnostic, no file, and the build continues. A write error is logged and
// swallowed for the same reason.
func (i *Integration) Emit(dir *url.URL) EmitResult {
	path, ok := fsurl.DirFromURL(dir)
	if !ok {
		i.logger.Warn("output directory could not be resolved, skipping artifact")
		return EmitResult{Status: EmitSkipped}
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		i.logger.Warn("output directory does not exist, skipping artifact", "dir", path)
		return EmitResult{Status: EmitSkipped}
	}

	dest := filepath.Join(path, ArtifactName)
	data := i.payload().marshal()

	if err := i.writeFile(dest, data, 0o644); err != nil {
		i.logger.Error("failed to write artifact", "path", dest, "error", err)
		return EmitResult{Status: EmitFailed, Path: dest, Err: err}
	}

	i.logger.Info("artifact written", "path", ArtifactName)
	return EmitResult{Status: EmitWritten, Path: dest}
}

// payload builds the artifact content, applying the defaulting policy:
// absent output mode becomes the sentinel string, absent site becomes an
// explicit JSON null.
func (i *Integration) payload() Payload {
	out := i.snap.output
	if out == "" {
		out = unknownOutput
	}

	var site *string
	if i.snap.site != "" {
		s := i.snap.site
		site = &s
	}

	return Payload{
		Framework: framework,
		Output:    out,
		Site:      site,
		BuiltAt:   i.now().UTC().Format(time.RFC3339),
	}
}

// marshal renders the payload as stable, 2-space-indented JSON with no
// trailing data. Marshaling a flat struct of strings cannot fail.
func (p Payload) marshal() []byte {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		panic("buildinfo: marshaling flat payload: " + err.Error())
	}
	return data
}
