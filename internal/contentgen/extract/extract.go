// Package extract recovers generated-file paths from the orchestrator's
// free-text output and verifies them against the filesystem.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jaltareyr/edumind-api/internal/contentgen/domain"
)

// filePattern matches output-style document paths in agent prose, e.g.
// "./output/Design_Patterns_20240101_120000.pptx" or "output/notes.pdf".
var filePattern = regexp.MustCompile(`(?:output/|\./)[\w\-/]+\.(?:pdf|pptx)`)

// Result classifies one extraction pass.
type Result struct {
	Status  string
	Message string
	// Files holds verified paths when any exist, else every path found.
	Files []domain.GeneratedFile
	// DownloadURLs has one entry per verified file, addressed by name.
	DownloadURLs []string
}

// DownloadURLPrefix is the route files are served from, by filename only.
const DownloadURLPrefix = "/api/v1/agent/download/"

// ExtractAndVerify scans freeText for document paths, resolves each against
// outputDir, and checks existence on disk. knownPaths are paths registered
// directly by the renderers; they take part ahead of text mining.
func ExtractAndVerify(freeText, outputDir string, knownPaths []string) Result {
	candidates := append([]string{}, knownPaths...)
	candidates = append(candidates, filePattern.FindAllString(freeText, -1)...)
	candidates = dedupe(candidates)

	if len(candidates) == 0 {
		return Result{
			Status:  domain.StatusCompleted,
			Message: "Agent workflow completed. Check agent output for details.",
		}
	}

	var all []domain.GeneratedFile
	var verified []domain.GeneratedFile
	var urls []string

	for _, candidate := range candidates {
		resolved := candidate
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(outputDir, filepath.Base(candidate))
		}

		file := domain.GeneratedFile{Path: candidate, Format: formatOf(candidate)}
		if _, err := os.Stat(resolved); err == nil {
			file.Path = resolved
			file.Verified = true
			verified = append(verified, file)
			urls = append(urls, DownloadURLPrefix+filepath.Base(resolved))
		}
		all = append(all, file)
	}

	if len(verified) > 0 {
		return Result{
			Status:       domain.StatusSuccess,
			Message:      fmt.Sprintf("Successfully generated %d document(s)", len(verified)),
			Files:        verified,
			DownloadURLs: urls,
		}
	}

	return Result{
		Status:  domain.StatusPartial,
		Message: "Agent completed but some files may not have been generated correctly",
		Files:   all,
	}
}

func formatOf(path string) string {
	if strings.HasSuffix(path, ".pptx") {
		return domain.FormatPPTX
	}
	return domain.FormatPDF
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		key := filepath.Base(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
