package utils

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oschwald/geoip2-golang"
)

var errGeoDisabled = errors.New("geoip lookups disabled")

// GeoInfo is what the locator knows about an address.
type GeoInfo struct {
	IPAddress      string
	Version        string
	CountryCode    string
	CountryName    string
	ASN            uint
	ASOrganization string
	Error          string
}

// Fields flattens the populated parts of g into log key/value pairs.
func (g GeoInfo) Fields() []interface{} {
	var kv []interface{}
	if g.CountryCode != "" {
		kv = append(kv, "country", g.CountryCode)
	}
	if g.ASN != 0 {
		kv = append(kv, "asn", g.ASN, "as_org", g.ASOrganization)
	}
	return kv
}

// GeoLocator wraps optional MaxMind Country (or City) and ASN readers.
// A locator with no readers is valid and returns empty lookups.
type GeoLocator struct {
	countryDB *geoip2.Reader
	asnDB     *geoip2.Reader
	logger    *log.Logger
}

// OpenGeoLocator opens the databases at the given paths. An empty path or an
// unreadable file disables that lookup; it is not an error.
func OpenGeoLocator(countryDBPath, asnDBPath string, logger *log.Logger) *GeoLocator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &GeoLocator{logger: logger}
	g.countryDB = g.open("country", countryDBPath)
	g.asnDB = g.open("asn", asnDBPath)
	return g
}

func (g *GeoLocator) open(kind, path string) *geoip2.Reader {
	if path == "" {
		g.logger.Debug("MMDB path not provided, lookups disabled", "db", kind)
		return nil
	}
	db, err := geoip2.Open(path)
	if err != nil {
		g.logger.Warn("Could not open MMDB, lookups disabled", "db", kind, "path", path, "err", err)
		return nil
	}
	g.logger.Info("Loaded MMDB", "db", kind, "path", path)
	return db
}

// Enabled reports whether at least one database is loaded.
func (g *GeoLocator) Enabled() bool {
	return g != nil && (g.countryDB != nil || g.asnDB != nil)
}

// Lookup classifies ipStr and, when databases are loaded, adds country and
// ASN data. Lookup failures are reported in GeoInfo.Error.
func (g *GeoLocator) Lookup(ipStr string) GeoInfo {
	info := GeoInfo{IPAddress: ipStr}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		info.Error = "Invalid IP address format"
		return info
	}
	if ip.To4() != nil {
		info.Version = "IPv4"
	} else {
		info.Version = "IPv6"
	}

	if !g.Enabled() {
		info.Error = errGeoDisabled.Error()
		return info
	}

	var geoErrs []string
	if g.countryDB != nil {
		rec, err := g.countryDB.Country(ip)
		if err != nil {
			geoErrs = append(geoErrs, fmt.Sprintf("country lookup: %v", err))
		} else if rec != nil {
			info.CountryCode = rec.Country.IsoCode
			info.CountryName = rec.Country.Names["en"]
		}
	}
	if g.asnDB != nil {
		rec, err := g.asnDB.ASN(ip)
		if err != nil {
			geoErrs = append(geoErrs, fmt.Sprintf("asn lookup: %v", err))
		} else if rec != nil {
			info.ASN = rec.AutonomousSystemNumber
			info.ASOrganization = rec.AutonomousSystemOrganization
		}
	}
	if len(geoErrs) > 0 {
		info.Error = strings.Join(geoErrs, "; ")
	}
	return info
}

// Close releases the underlying readers.
func (g *GeoLocator) Close() error {
	if g == nil {
		return nil
	}
	var errs []error
	if g.countryDB != nil {
		if err := g.countryDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close country db: %w", err))
		}
	}
	if g.asnDB != nil {
		if err := g.asnDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close asn db: %w", err))
		}
	}
	return errors.Join(errs...)
}
