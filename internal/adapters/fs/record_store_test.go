package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-relay/internal/domain/config"
)

func newTestRecordStore(t *testing.T) (*RecordStoreAdapter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRecordStoreAdapter(&config.RuntimeConfig{ProjectPath: dir}), dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestRecordStore_ListEmpty(t *testing.T) {
	store, _ := newTestRecordStore(t)

	files, err := store.ListRecordFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRecordStore_ListFiltersAndOrders(t *testing.T) {
	store, dir := newTestRecordStore(t)

	writeFile(t, dir, "deploy-100.json", `{}`)
	writeFile(t, dir, "deploy-300.json", `{}`)
	writeFile(t, dir, "deploy-200.json", `{}`)
	writeFile(t, dir, "hardhat.config.js", `module.exports = {}`)
	writeFile(t, dir, "deploy-notes.txt", `x`)
	writeFile(t, dir, "record-400.json", `{}`)
	writeFile(t, dir, "deploy-draft.json", `{}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "deploy-999.json"), 0755))

	files, err := store.ListRecordFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy-draft.json", "deploy-100.json", "deploy-200.json", "deploy-300.json"}, files)
}

func TestRecordStore_ListOrdersByTimestampAcrossWidths(t *testing.T) {
	store, dir := newTestRecordStore(t)

	writeFile(t, dir, "deploy-999999999999.json", `{}`)
	writeFile(t, dir, "deploy-1700000000000.json", `{}`)

	files, err := store.ListRecordFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"deploy-999999999999.json", "deploy-1700000000000.json"}, files)
}

func TestRecordStore_ListMissingDirectory(t *testing.T) {
	store := NewRecordStoreAdapter(&config.RuntimeConfig{ProjectPath: filepath.Join(t.TempDir(), "missing")})

	_, err := store.ListRecordFiles(context.Background())
	assert.Error(t, err)
}

func TestRecordStore_ReadRecord(t *testing.T) {
	store, dir := newTestRecordStore(t)
	writeFile(t, dir, "deploy-1700000000000.json", `{
  "timestamp": 1700000000000,
  "deployer": "0x1111111111111111111111111111111111111111",
  "vault": "0x2222222222222222222222222222222222222222",
  "dmt": "0x3333333333333333333333333333333333333333"
}`)

	record, err := store.ReadRecord(context.Background(), "deploy-1700000000000.json")
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), record.Timestamp)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", record.Deployer)
	assert.Equal(t, map[string]string{
		"vault": "0x2222222222222222222222222222222222222222",
		"dmt":   "0x3333333333333333333333333333333333333333",
	}, record.Contracts)
}

func TestRecordStore_ReadCorruptRecord(t *testing.T) {
	store, dir := newTestRecordStore(t)
	writeFile(t, dir, "deploy-1.json", `{"timestamp": 1, "deployer": `)

	_, err := store.ReadRecord(context.Background(), "deploy-1.json")
	assert.Error(t, err)
}

func TestRecordStore_ReadRejectsPaths(t *testing.T) {
	store, _ := newTestRecordStore(t)

	_, err := store.ReadRecord(context.Background(), "../deploy-1.json")
	assert.Error(t, err)
}
