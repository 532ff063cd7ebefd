// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package settingstore

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ned0000/servmgmtd/internal/registry"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
)

const sampleSetting = `<?xml version="1.0"?>
<servMgmtSetting>
  <version>1.0</version>
  <globalSetting>
    <maxFailureRetryCount>3</maxFailureRetryCount>
  </globalSetting>
  <serviceSetting>
    <service>
      <name>a</name>
      <description>service a</description>
      <startupType>automatic</startupType>
      <cmdPath>/bin/true</cmdPath>
      <cmdParam></cmdParam>
    </service>
    <service>
      <name>b</name>
      <startupType>manual</startupType>
      <cmdPath>/bin/sleep</cmdPath>
      <cmdParam>60</cmdParam>
    </service>
  </serviceSetting>
</servMgmtSetting>
`

func writeTempSetting(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "setting.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesGlobalSettings(t *testing.T) {
	path := writeTempSetting(t, sampleSetting)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, 3, doc.MaxFailureRetryCount)
}

func TestLoad_MalformedXMLReturnsMalformedSetting(t *testing.T) {
	path := writeTempSetting(t, "<servMgmtSetting><version>1.0</version>")

	_, err := Load(path)
	assert.True(t, servmgmterr.Is(err, servmgmterr.MalformedSetting))
}

func TestLoad_MissingMaxFailureRetryCountReturnsInvalidSetting(t *testing.T) {
	path := writeTempSetting(t, `<?xml version="1.0"?>
<servMgmtSetting>
  <version>1.0</version>
  <globalSetting></globalSetting>
</servMgmtSetting>`)

	_, err := Load(path)
	assert.True(t, servmgmterr.Is(err, servmgmterr.InvalidSetting))
}

func TestBuildTable_PopulatesBothServices(t *testing.T) {
	path := writeTempSetting(t, sampleSetting)
	doc, err := Load(path)
	require.NoError(t, err)

	table, err := doc.BuildTable()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	a, ok := table.Get("a")
	require.True(t, ok)
	assert.Equal(t, registry.StartupAutomatic, a.StartupType)
	assert.Equal(t, "/bin/true", a.CmdPath)
	assert.Equal(t, "service a", a.Description)

	b, ok := table.Get("b")
	require.True(t, ok)
	assert.Equal(t, registry.StartupManual, b.StartupType)
}

func TestBuildTable_SkipsEntryMissingCmdPath(t *testing.T) {
	path := writeTempSetting(t, `<?xml version="1.0"?>
<servMgmtSetting>
  <version>1.0</version>
  <globalSetting><maxFailureRetryCount>3</maxFailureRetryCount></globalSetting>
  <serviceSetting>
    <service>
      <name>broken</name>
      <startupType>automatic</startupType>
    </service>
    <service>
      <name>ok</name>
      <startupType>automatic</startupType>
      <cmdPath>/bin/true</cmdPath>
    </service>
  </serviceSetting>
</servMgmtSetting>`)

	doc, err := Load(path)
	require.NoError(t, err)

	table, err := doc.BuildTable()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	_, ok := table.Get("ok")
	assert.True(t, ok)
	_, ok = table.Get("broken")
	assert.False(t, ok)
}

func TestBuildTable_RejectsDuplicateNames(t *testing.T) {
	path := writeTempSetting(t, `<?xml version="1.0"?>
<servMgmtSetting>
  <version>1.0</version>
  <globalSetting><maxFailureRetryCount>3</maxFailureRetryCount></globalSetting>
  <serviceSetting>
    <service><name>a</name><startupType>automatic</startupType><cmdPath>/bin/true</cmdPath></service>
    <service><name>a</name><startupType>automatic</startupType><cmdPath>/bin/true</cmdPath></service>
  </serviceSetting>
</servMgmtSetting>`)

	doc, err := Load(path)
	require.NoError(t, err)

	_, err = doc.BuildTable()
	assert.True(t, servmgmterr.Is(err, servmgmterr.InvalidSetting))
}

func TestBuildTable_Exactly30ServicesLoad_31stRejected(t *testing.T) {
	var body string
	for i := 0; i < 31; i++ {
		body += fmt.Sprintf(`<service><name>svc%d</name><startupType>manual</startupType><cmdPath>/bin/true</cmdPath></service>`, i)
	}
	path := writeTempSetting(t, fmt.Sprintf(`<?xml version="1.0"?>
<servMgmtSetting>
  <version>1.0</version>
  <globalSetting><maxFailureRetryCount>3</maxFailureRetryCount></globalSetting>
  <serviceSetting>%s</serviceSetting>
</servMgmtSetting>`, body))

	doc, err := Load(path)
	require.NoError(t, err)

	_, err = doc.BuildTable()
	assert.True(t, servmgmterr.Is(err, servmgmterr.InvalidSetting))
}

func TestChangeStartupType_PersistsAndRoundTrips(t *testing.T) {
	path := writeTempSetting(t, sampleSetting)
	doc, err := Load(path)
	require.NoError(t, err)

	table, err := doc.BuildTable()
	require.NoError(t, err)

	b, ok := table.Get("b")
	require.True(t, ok)

	require.NoError(t, doc.ChangeStartupType(b, registry.StartupAutomatic))

	reloaded, err := Load(path)
	require.NoError(t, err)
	reloadedTable, err := reloaded.BuildTable()
	require.NoError(t, err)

	rb, ok := reloadedTable.Get("b")
	require.True(t, ok)
	assert.Equal(t, registry.StartupAutomatic, rb.StartupType)
}

func TestChangeStartupType_RollsBackOnPersistFailure(t *testing.T) {
	path := writeTempSetting(t, sampleSetting)
	doc, err := Load(path)
	require.NoError(t, err)
	table, err := doc.BuildTable()
	require.NoError(t, err)

	b, ok := table.Get("b")
	require.True(t, ok)
	node := b.StartupTypeNode()
	before := node.Value

	doc.path = filepath.Join(t.TempDir(), "nonexistent-dir", "setting.xml")

	err = doc.ChangeStartupType(b, registry.StartupAutomatic)
	assert.True(t, servmgmterr.Is(err, servmgmterr.PersistFailed))
	assert.Equal(t, before, node.Value)
}

func TestBootstrap_GeneratesDefaultFileWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setting.xml")

	doc, err := Bootstrap(path, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, doc.MaxFailureRetryCount)
	assert.Equal(t, "1.0", doc.Version)

	table, err := doc.BuildTable()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<maxFailureRetryCount>5</maxFailureRetryCount>")
}

func TestBootstrap_LeavesExistingFileUntouched(t *testing.T) {
	path := writeTempSetting(t, sampleSetting)

	doc, err := Bootstrap(path, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.MaxFailureRetryCount)
}
