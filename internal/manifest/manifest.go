package manifest

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tianmenglucky/lbe-installer/internal/gateway"
	"github.com/tianmenglucky/lbe-installer/internal/version"
)

// ErrParse marks a manifest body that is not a valid download info document.
var ErrParse = errors.New("malformed manifest")

// Fallback values used when the published manifest cannot be fetched.
const (
	DefaultRuntimeVersion  = "5.4.23.2"
	DefaultModVersion      = "1.0.0"
	DefaultRuntimeArtifact = "BepInEx_win_{arch}_{version}.zip"
	DefaultModArtifact     = "com.github.dogdie233.LiarsBarEnhance.dll"
)

// Manifest describes the currently published component versions.
type Manifest struct {
	RuntimeVersion  string `json:"BepInExVersion"`
	ModVersion      string `json:"LiarsBarEnhanceVersion"`
	RuntimeArtifact string `json:"BepInExName"`
	ModArtifact     string `json:"LiarsBarEnhanceName"`
	// LatestInstallerVersion is nil when the feed does not advertise one.
	LatestInstallerVersion *version.Version `json:"LatestInstallVersion,omitempty"`
}

// Default returns the built-in manifest.
func Default() *Manifest {
	return &Manifest{
		RuntimeVersion:  DefaultRuntimeVersion,
		ModVersion:      DefaultModVersion,
		RuntimeArtifact: DefaultRuntimeArtifact,
		ModArtifact:     DefaultModArtifact,
	}
}

// Fetcher is the subset of the download gateway the manifest needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*gateway.Body, error)
}

//go:embed manifest.schema.json
var schemaJSON []byte

const schemaURL = "https://lbe-installer.local/manifest.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Fetch downloads and parses the manifest at infoURL. Network problems wrap
// gateway.ErrNetwork; bad bodies wrap ErrParse.
func Fetch(ctx context.Context, f Fetcher, infoURL string) (*Manifest, error) {
	body, err := f.Fetch(ctx, infoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w: %v", gateway.ErrNetwork, err)
	}
	return Parse(data)
}

// Parse validates and decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &m, nil
}
