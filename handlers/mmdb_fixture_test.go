package handlers

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
	"github.com/stretchr/testify/require"
)

// writeMMDB writes a database of dbType mapping network to record.
func writeMMDB(t *testing.T, dir, dbType, network string, record mmdbtype.Map) string {
	t.Helper()

	tree, err := mmdbwriter.New(mmdbwriter.Options{DatabaseType: dbType, RecordSize: 24})
	require.NoError(t, err)

	_, ipNet, err := net.ParseCIDR(network)
	require.NoError(t, err)
	require.NoError(t, tree.Insert(ipNet, record))

	path := filepath.Join(dir, dbType+".mmdb")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = tree.WriteTo(f)
	require.NoError(t, err)
	return path
}
