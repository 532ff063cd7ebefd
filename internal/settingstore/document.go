// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package settingstore

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/ptree"
	"github.com/ned0000/servmgmtd/internal/registry"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
)

// Document is a loaded setting file: the property tree plus the two global
// fields the supervisor reads directly.
type Document struct {
	Tree                 *ptree.Tree
	Version              string
	MaxFailureRetryCount int

	path string
}

// rootName is the required root element of a setting file.
const rootName = "servMgmtSetting"

// Bootstrap loads path, creating a minimal setting file there first if it
// does not yet exist. The generated file declares no services and sets
// globalSetting.maxFailureRetryCount to defaultMaxRetryCount, so a fresh
// install has something valid to edit rather than failing to start at all.
// An existing file is never touched, even if empty or invalid; defaultMaxRetryCount
// plays no role once a file is present, since Load already requires the
// field and validates its range.
func Bootstrap(path string, defaultMaxRetryCount int) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, servmgmterr.Wrap(servmgmterr.MalformedSetting, err, "stat setting file")
		}
		if err := writeDefaultDocument(path, defaultMaxRetryCount); err != nil {
			return nil, err
		}
		logging.Info().Str("path", path).Msg("settingstore: generated default setting file")
	}

	return Load(path)
}

func writeDefaultDocument(path string, defaultMaxRetryCount int) error {
	tree := ptree.NewTree("", rootName)
	tree.Root.AddChild("", "version", "1.0")
	global := tree.Root.AddChild("", "globalSetting", "")
	global.AddChild("", "maxFailureRetryCount", strconv.Itoa(defaultMaxRetryCount))
	tree.Root.AddChild("", "serviceSetting", "")

	return save(tree, path)
}

// Load parses path into a Document. It fails with MalformedSetting if the
// XML is not well-formed, and with InvalidSetting if servMgmtSetting,
// version, or globalSetting.maxFailureRetryCount is missing or out of
// range.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, servmgmterr.Wrap(servmgmterr.MalformedSetting, err, "open setting file")
	}
	defer f.Close()

	tree, err := ptree.Parse(f)
	if err != nil {
		return nil, servmgmterr.Wrap(servmgmterr.MalformedSetting, err, "parse setting file")
	}

	if tree.Root.Name != rootName {
		return nil, servmgmterr.New(servmgmterr.InvalidSetting, "missing root element "+rootName)
	}

	versionNode, ok := tree.Root.Child("version")
	if !ok {
		return nil, servmgmterr.New(servmgmterr.InvalidSetting, "missing version")
	}

	retryNode, ok := tree.Find("globalSetting.maxFailureRetryCount")
	if !ok {
		return nil, servmgmterr.New(servmgmterr.InvalidSetting, "missing globalSetting.maxFailureRetryCount")
	}
	retryCount, err := strconv.Atoi(retryNode.Value)
	if err != nil || retryCount < 0 || retryCount > 255 {
		return nil, servmgmterr.New(servmgmterr.InvalidSetting, "maxFailureRetryCount must be a decimal 0-255")
	}

	return &Document{
		Tree:                 tree,
		Version:              versionNode.Value,
		MaxFailureRetryCount: retryCount,
		path:                 path,
	}, nil
}

// BuildTable walks serviceSetting.service and populates a registry.Table.
// A <service> entry missing a required field (name, startupType, cmdPath)
// is logged and skipped rather than failing the whole load. A duplicate
// name or exceeding registry.MaxServices fails the whole load, since both
// are structural invariants rather than a single bad entry.
func (d *Document) BuildTable() (*registry.Table, error) {
	table := registry.NewTable()

	for _, svc := range d.Tree.FindAll("serviceSetting.service") {
		rec, ok := d.parseService(svc)
		if !ok {
			continue
		}
		if err := table.Add(rec); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func (d *Document) parseService(n *ptree.Node) (*registry.Record, bool) {
	nameNode, ok := n.Child("name")
	if !ok || nameNode.Value == "" {
		logging.Warn().Msg("settingstore: skipping service entry with no name")
		return nil, false
	}
	name := nameNode.Value

	cmdPathNode, ok := n.Child("cmdPath")
	if !ok || cmdPathNode.Value == "" {
		logging.Warn().Str("service", name).Msg("settingstore: skipping service entry with no cmdPath")
		return nil, false
	}

	startupTypeNode, ok := n.Child("startupType")
	if !ok {
		logging.Warn().Str("service", name).Msg("settingstore: skipping service entry with no startupType")
		return nil, false
	}

	if err := validateServiceFields(name, cmdPathNode.Value); err != nil {
		logging.Warn().Str("service", name).Err(err).Msg("settingstore: skipping invalid service entry")
		return nil, false
	}

	rec := &registry.Record{
		Name:        name,
		CmdPath:     cmdPathNode.Value,
		StartupType: registry.ParseStartupType(startupTypeNode.Value),
		Status:      registry.StatusStopped,
	}
	rec.BindStartupTypeNode(startupTypeNode)
	if rec.StartupType == registry.StartupUnknown {
		logging.Warn().Str("service", name).Str("startup_type", startupTypeNode.Value).
			Msg("settingstore: unrecognized startupType, service will not be started at boot")
	}

	if descNode, ok := n.Child("description"); ok {
		rec.Description = descNode.Value
	}
	if versionNode, ok := n.Child("version"); ok {
		rec.Version = versionNode.Value
	}
	if paramNode, ok := n.Child("cmdParam"); ok {
		rec.CmdParam = paramNode.Value
	}

	return rec, true
}

// ChangeStartupType mutates rec's bound property-tree node to the canonical
// lowercase mode string and persists the change. On a persist failure the
// caller is expected to roll back its own in-memory copy; this function
// does not touch rec.StartupType itself.
func (d *Document) ChangeStartupType(rec *registry.Record, mode registry.StartupType) error {
	node := rec.StartupTypeNode()
	if node == nil {
		return servmgmterr.NewForService(servmgmterr.PersistFailed, rec.Name, "service has no bound startup-type node")
	}

	previous := node.Value
	node.SetValue(string(mode))

	if err := d.Save(); err != nil {
		node.SetValue(previous)
		return err
	}
	return nil
}

// Save writes the document's tree back to its source path through a
// temporary sibling file, renamed into place.
func (d *Document) Save() error {
	return save(d.Tree, d.path)
}

// save is the atomic write primitive: write-to-temp, fsync, rename.
func save(tree *ptree.Tree, path string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return servmgmterr.Wrap(servmgmterr.PersistFailed, err, "create temp setting file")
	}

	if err := ptree.Write(f, tree); err != nil {
		f.Close()
		os.Remove(tmp)
		return servmgmterr.Wrap(servmgmterr.PersistFailed, err, "serialise setting file")
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return servmgmterr.Wrap(servmgmterr.PersistFailed, err, "sync temp setting file")
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return servmgmterr.Wrap(servmgmterr.PersistFailed, err, "close temp setting file")
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return servmgmterr.Wrap(servmgmterr.PersistFailed, err, "rename temp setting file into place")
	}

	return nil
}

func validateServiceFields(name, cmdPath string) error {
	fields := serviceFields{Name: name, CmdPath: cmdPath}
	if err := getValidator().Struct(fields); err != nil {
		return fmt.Errorf("invalid service fields: %w", err)
	}
	return nil
}
