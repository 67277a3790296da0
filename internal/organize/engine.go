// Package organize implements the classify-and-move engine: a single
// non-recursive pass over a directory that relocates every regular file
// into its category subdirectory.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"organizer/internal/classify"
	"organizer/internal/config"
	"organizer/internal/errors"
	"organizer/internal/log"
	"organizer/pkg/types"
)

// maxSuffix bounds the collision probe in UniqueDestination. Past it the
// entry fails with NameSpaceExhausted instead of looping on.
const maxSuffix = 9999

// Engine performs organizing passes. It holds the run settings and is
// safe to reuse across passes; it keeps no state between them.
type Engine struct {
	dryRun  bool
	verbose bool
	rules   *classify.RuleSet
}

// New creates an engine with no user rules.
func New(dryRun, verbose bool) *Engine {
	return &Engine{dryRun: dryRun, verbose: verbose}
}

// NewWithConfig creates an engine from the loaded configuration.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	rules, err := classify.NewRuleSet(cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &Engine{
		dryRun:  cfg.Settings.DryRun,
		verbose: cfg.Settings.Verbose,
		rules:   rules,
	}, nil
}

// SetDryRun sets whether operations should be performed or just reported
func (e *Engine) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// IsDryRun returns whether the engine is in dry run mode
func (e *Engine) IsDryRun() bool {
	return e.dryRun
}

// EnsureCategoryDir makes sure baseDir/category exists as a directory and
// returns its path. Calling it again with no intervening change is a
// no-op; the "Created directory" line is logged only on actual creation.
// In dry-run mode the conflict check still runs but nothing is created.
func (e *Engine) EnsureCategoryDir(baseDir, category string) (string, error) {
	path := filepath.Join(baseDir, category)

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return path, nil
		}
		log.Error("Path exists but is not a directory: %s", path)
		return "", errors.NewOrganizeError("path exists but is not a directory", path, errors.CategoryPathConflict, nil)
	}

	if e.dryRun {
		return path, nil
	}

	if err := os.Mkdir(path, 0o755); err != nil {
		log.Error("Failed to create directory '%s': %v", path, err)
		return "", errors.NewOrganizeError("failed to create directory", path, errors.DirectoryCreateFailed, err)
	}

	log.Info("Created directory: %s", path)
	return path, nil
}

// splitName splits a file name into stem and extension at the last dot.
// No dot, or a leading dot, means the whole name is the stem.
func splitName(name string) (stem, ext string) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// UniqueDestination returns a path in categoryDir where filename can land
// without overwriting anything. The unmodified name is tried first, then
// stem_1.ext, stem_2.ext and so on up to the probe bound. The existence
// check races with concurrent writers of the directory; no reservation is
// made between check and use.
func (e *Engine) UniqueDestination(categoryDir, filename string) (string, error) {
	dst := filepath.Join(categoryDir, filename)
	if _, err := os.Stat(dst); err != nil {
		return dst, nil
	}

	stem, ext := splitName(filename)
	for i := 1; i <= maxSuffix; i++ {
		candidate := filepath.Join(categoryDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Stat(candidate); err != nil {
			return candidate, nil
		}
	}

	log.Error("Could not generate unique name for '%s' in '%s'", filename, categoryDir)
	return "", errors.NewOrganizeError("could not generate unique name", filename, errors.NameSpaceExhausted, nil)
}

// OrganizeDirectory runs one pass over directory and returns a report.
// A non-nil error means the pass could not start at all; per-entry
// failures are logged, recorded in the report, and set report.Failed
// without stopping the walk.
func (e *Engine) OrganizeDirectory(directory string) (*types.Report, error) {
	info, err := os.Stat(directory)
	if err != nil {
		log.Error("Cannot access directory '%s': %v", directory, err)
		return nil, errors.NewOrganizeError("cannot access directory", directory, errors.SetupFailed, err)
	}
	if !info.IsDir() {
		log.Error("Path is not a directory: '%s'", directory)
		return nil, errors.NewOrganizeError("path is not a directory", directory, errors.SetupFailed, nil)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		log.Error("Failed to open directory '%s': %v", directory, err)
		return nil, errors.NewOrganizeError("failed to open directory", directory, errors.SetupFailed, err)
	}

	if e.dryRun {
		log.Info("Organizing files in '%s' (dry-run mode)", directory)
	} else {
		log.Info("Organizing files in '%s'", directory)
	}

	report := &types.Report{}
	for _, entry := range entries {
		src := filepath.Join(directory, entry.Name())

		// Stat follows symlinks, like the directory-kind check above.
		fi, err := os.Stat(src)
		if err != nil {
			log.Warn("Skipping '%s' (cannot stat: %v)", src, err)
			report.Skipped++
			continue
		}

		if !fi.Mode().IsRegular() {
			if e.verbose {
				log.Debug("Skipping non-regular file: %s", src)
			}
			report.Skipped++
			continue
		}

		result := e.organizeFile(directory, entry.Name(), src)
		if result.Error != nil {
			report.Failed = true
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// organizeFile classifies one regular file, resolves its destination and
// moves it (or reports the planned move in dry-run mode).
func (e *Engine) organizeFile(baseDir, name, src string) types.MoveResult {
	result := types.MoveResult{Source: src}

	category := e.rules.CategoryFor(name)

	categoryDir, err := e.EnsureCategoryDir(baseDir, category)
	if err != nil {
		result.Error = err
		return result
	}

	dst, err := e.UniqueDestination(categoryDir, name)
	if err != nil {
		result.Error = err
		return result
	}
	result.Destination = dst

	if e.dryRun {
		log.Info("[DRY-RUN] Move '%s' -> '%s'", src, dst)
		return result
	}

	if err := os.Rename(src, dst); err != nil {
		log.Error("Failed to move '%s' -> '%s': %v", src, dst, err)
		result.Error = errors.NewOrganizeError("failed to move file", src, errors.MoveFailed, err)
		return result
	}

	result.Moved = true
	log.Info("Moved '%s' -> '%s'", src, dst)
	return result
}
