package utils

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoLocator_WithoutDatabases(t *testing.T) {
	t.Parallel()

	g := OpenGeoLocator("", "", log.New(io.Discard))
	assert.False(t, g.Enabled())

	info := g.Lookup("1.2.3.4")
	assert.Equal(t, "IPv4", info.Version)
	assert.Equal(t, errGeoDisabled.Error(), info.Error)
	assert.Empty(t, info.Fields())

	info = g.Lookup("2001:db8::1")
	assert.Equal(t, "IPv6", info.Version)

	require.NoError(t, g.Close())
}

func TestGeoLocator_MissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	g := OpenGeoLocator(filepath.Join(dir, "country.mmdb"), filepath.Join(dir, "asn.mmdb"), nil)
	assert.False(t, g.Enabled())
	require.NoError(t, g.Close())
}

func TestGeoLocator_InvalidAddress(t *testing.T) {
	t.Parallel()

	g := OpenGeoLocator("", "", nil)
	info := g.Lookup("Invalid")
	assert.Equal(t, "Invalid IP address format", info.Error)
	assert.Empty(t, info.Version)
}

func TestGeoInfo_Fields(t *testing.T) {
	t.Parallel()

	info := GeoInfo{CountryCode: "NL", ASN: 1136, ASOrganization: "KPN B.V."}
	assert.Equal(t, []interface{}{"country", "NL", "asn", uint(1136), "as_org", "KPN B.V."}, info.Fields())
}

func TestGeoLocator_NilSafe(t *testing.T) {
	t.Parallel()

	var g *GeoLocator
	assert.False(t, g.Enabled())
	assert.NoError(t, g.Close())
	assert.Equal(t, errGeoDisabled.Error(), g.Lookup("1.2.3.4").Error)
}

func TestGeoLocator_Lookup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	g := OpenGeoLocator(writeCountryDB(t, dir), writeASNDB(t, dir), nil)
	t.Cleanup(func() { _ = g.Close() })
	require.True(t, g.Enabled())

	info := g.Lookup("81.2.69.142")
	assert.Empty(t, info.Error)
	assert.Equal(t, "IPv4", info.Version)
	assert.Equal(t, "GB", info.CountryCode)
	assert.Equal(t, "United Kingdom", info.CountryName)
	assert.Equal(t, uint(20712), info.ASN)
	assert.Equal(t, "Andrews & Arnold Ltd", info.ASOrganization)
	assert.Equal(t, []interface{}{"country", "GB", "asn", uint(20712), "as_org", "Andrews & Arnold Ltd"}, info.Fields())

	outside := g.Lookup("8.8.8.8")
	assert.Empty(t, outside.CountryCode)
	assert.Zero(t, outside.ASN)
}

func TestGeoLocator_WrongDatabaseType(t *testing.T) {
	t.Parallel()

	// An ASN database passed as the country database fails every country lookup.
	dir := t.TempDir()
	g := OpenGeoLocator(writeASNDB(t, dir), "", nil)
	t.Cleanup(func() { _ = g.Close() })

	info := g.Lookup("81.2.69.142")
	assert.Contains(t, info.Error, "country lookup")
	assert.Empty(t, info.CountryCode)
}
