// Package config reads settings from the environment through prefixed views,
// e.g. New().Prefix("CORE_SPOOF_").MayInt("PAGE_BLOCKS", 2000) reads
// CORE_SPOOF_PAGE_BLOCKS. Values are read at call time.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"spoofwatch/internal/platform/logger"

	"github.com/ethereum/go-ethereum/common"
)

// Conf is a view over the env vars sharing a prefix
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix narrows the view: New().Prefix("CORE_").Prefix("API_") reads CORE_API_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// parsed reads k through parse. Unset gives def, unparsable logs a warning and gives def.
func parsed[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s := c.get(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Interface("default", def).Msg("unparsable env, using default")
		return def
	}
	return v
}

// fatal panics through the logger so the offending key is on record
func (c Conf) fatal(k, value, msg string) {
	logger.Get().Panic().Str("key", c.key(k)).Str("value", value).Msg(msg)
}

func (c Conf) MustString(k string) string {
	v := c.get(k)
	if v == "" {
		c.fatal(k, v, "missing required env")
	}
	return v
}

// MustURL panics unless k holds an absolute URL
func (c Conf) MustURL(k string) *url.URL {
	s := c.MustString(k)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.fatal(k, s, "not an absolute URL")
	}
	return u
}

func (c Conf) MayString(k, def string) string {
	if v := c.get(k); v != "" {
		return v
	}
	return def
}

func (c Conf) MayInt(k string, def int) int { return parsed(c, k, def, strconv.Atoi) }

func (c Conf) MayBool(k string, def bool) bool { return parsed(c, k, def, strconv.ParseBool) }

func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return parsed(c, k, def, time.ParseDuration)
}

func (c Conf) MayUint64(k string, def uint64) uint64 {
	return parsed(c, k, def, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) })
}

// MayCSV splits a comma list, dropping blanks. Nothing left gives def.
func (c Conf) MayCSV(k string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns k's value when it is one of allowed (any case), def when
// unset, and panics otherwise
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	if v != def {
		c.fatal(k, v, "not one of "+strings.Join(allowed, "|"))
	}
	return v
}

// MayAddress reads a hex contract or account address; a malformed one panics
func (c Conf) MayAddress(k string, def common.Address) common.Address {
	s := c.get(k)
	if s == "" {
		return def
	}
	if !common.IsHexAddress(s) {
		c.fatal(k, s, "not a hex address")
	}
	return common.HexToAddress(s)
}
