package utils

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
	"github.com/stretchr/testify/require"
)

const fixtureNetwork = "81.2.69.0/24"

// writeMMDB writes a one-network database of the given type into dir.
func writeMMDB(t *testing.T, dir, dbType string, record mmdbtype.Map) string {
	t.Helper()

	tree, err := mmdbwriter.New(mmdbwriter.Options{DatabaseType: dbType, RecordSize: 24})
	require.NoError(t, err)

	_, network, err := net.ParseCIDR(fixtureNetwork)
	require.NoError(t, err)
	require.NoError(t, tree.Insert(network, record))

	path := filepath.Join(dir, dbType+".mmdb")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = tree.WriteTo(f)
	require.NoError(t, err)
	return path
}

func writeCountryDB(t *testing.T, dir string) string {
	return writeMMDB(t, dir, "GeoLite2-Country", mmdbtype.Map{
		"country": mmdbtype.Map{
			"iso_code": mmdbtype.String("GB"),
			"names":    mmdbtype.Map{"en": mmdbtype.String("United Kingdom")},
		},
	})
}

func writeASNDB(t *testing.T, dir string) string {
	return writeMMDB(t, dir, "GeoLite2-ASN", mmdbtype.Map{
		"autonomous_system_number":       mmdbtype.Uint32(20712),
		"autonomous_system_organization": mmdbtype.String("Andrews & Arnold Ltd"),
	})
}
