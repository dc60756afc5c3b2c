// Package graphio loads monthly collaboration-graph snapshots from disk.
//
// The expected layout is one directory per project under a root, holding one
// JSON snapshot per month:
//
//	graphs/
//	  kubernetes/
//	    2024-01.json
//	    2024-02.json
//	  prometheus/
//	    2024-01.json
//
// Graph construction from raw event logs is an upstream concern; this
// package only reads its output.
package graphio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oss-pulse/pulse/internal/contract"
	"github.com/oss-pulse/pulse/schema"
)

const snapshotExt = ".json"

// FSGraphSource is a contract.GraphSource backed by a directory tree.
type FSGraphSource struct {
	root string
}

// NewFSGraphSource validates the root directory and returns a source over it.
func NewFSGraphSource(root string) (*FSGraphSource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("graphs directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("graphs directory %s is not a directory", root)
	}
	return &FSGraphSource{root: root}, nil
}

// Projects lists the project subdirectories in lexical order.
func (f *FSGraphSource) Projects(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", f.root, err)
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			projects = append(projects, e.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// Months lists the months with a snapshot file for a project, in
// chronological order. Files that do not parse as a month are ignored.
func (f *FSGraphSource) Months(ctx context.Context, project string) ([]schema.Month, error) {
	dir := filepath.Join(f.root, project)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var months []schema.Month
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		m, err := schema.ParseMonth(strings.TrimSuffix(name, snapshotExt))
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Ignoring %s", filepath.Join(dir, name)), err)
			continue
		}
		months = append(months, m)
	}
	schema.SortMonths(months)
	return months, nil
}

// Load reads and validates one snapshot file.
func (f *FSGraphSource) Load(ctx context.Context, project string, month schema.Month) (*schema.Snapshot, error) {
	path := filepath.Join(f.root, project, string(month)+snapshotExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var snap schema.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if snap.Project == "" {
		snap.Project = project
	}
	if snap.Month == "" {
		snap.Month = month
	}
	if err := validate(&snap, project, month); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// validate rejects snapshots whose metadata contradicts their location or
// whose edges reference actors that are not in the actor list.
func validate(s *schema.Snapshot, project string, month schema.Month) error {
	if s.Project != project {
		return fmt.Errorf("project mismatch: file says %q", s.Project)
	}
	if s.Month != month {
		return fmt.Errorf("month mismatch: file says %q", s.Month)
	}
	known := make(map[int64]bool, len(s.Actors))
	for _, a := range s.Actors {
		if known[a.ID] {
			return fmt.Errorf("duplicate actor id %d", a.ID)
		}
		known[a.ID] = true
	}
	for _, e := range s.Edges {
		if !known[e.Source] || !known[e.Target] {
			return fmt.Errorf("edge %d->%d references unknown actor", e.Source, e.Target)
		}
	}
	return nil
}
