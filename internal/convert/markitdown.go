// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

const imageMarkitdown = "markitdown:latest"

// containerRuntime describes a container CLI. Docker and Podman differ
// only in binary name and the subcommand that checks for a local image.
type containerRuntime struct {
	bin        string
	imageCheck []string
}

var runtimes = []containerRuntime{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

// MarkitdownConverter pipes documents through the markitdown container
// image using whichever container runtime is available.
type MarkitdownConverter struct {
	runtime string
	exec    executor
}

// newMarkitdown picks docker, then podman, and verifies that the
// markitdown image exists locally.
func newMarkitdown(ex executor) (*MarkitdownConverter, error) {
	for _, rt := range runtimes {
		if _, err := ex.LookPath(rt.bin); err != nil {
			continue
		}
		if err := ex.RunSilent(rt.bin, "info"); err != nil {
			continue
		}

		args := append(append([]string{}, rt.imageCheck...), imageMarkitdown)
		if err := ex.RunSilent(rt.bin, args...); err != nil {
			return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.bin, err)
		}
		log.Debug().Str("runtime", rt.bin).Msg("using markitdown container")
		return &MarkitdownConverter{runtime: rt.bin, exec: ex}, nil
	}
	return nil, fmt.Errorf("no container runtime available: neither docker nor podman found or operational")
}

// Name returns "markitdown".
func (m *MarkitdownConverter) Name() string { return "markitdown" }

// Convert streams the file at path into the container and returns the
// Markdown it prints.
func (m *MarkitdownConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	args := []string{"run", "--rm", "-i", imageMarkitdown}
	if err := m.exec.RunPiped(m.runtime, args, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown (%s): %w", path, m.runtime, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return out.String(), nil
}
