package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func AddressPrefixValidator(s string) error {
	if s == "" {
		return fmt.Errorf("address prefix must not be empty")
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return fmt.Errorf("address prefix %q must not contain whitespace", s)
	}
	return nil
}

func RouterConfigValidator(cfg *RouterCfg) error {
	err := NameValidator(string(cfg.Id))
	if err != nil {
		return err
	}
	if cfg.LogPath != "" {
		if err := PathValidator(cfg.LogPath); err != nil {
			return err
		}
	}
	if cfg.QueueDepth < 0 {
		return fmt.Errorf("queue depth %d must not be negative", cfg.QueueDepth)
	}
	seen := make(map[string]struct{})
	for _, addr := range cfg.Addresses {
		if err := AddressPrefixValidator(addr.Prefix); err != nil {
			return err
		}
		if _, err := addr.Scope.Marker(); err != nil {
			return err
		}
		if addr.Distribution != "" {
			if err := addr.Distribution.Valid(); err != nil {
				return err
			}
		}
		marker, _ := addr.Scope.Marker()
		key := string(marker) + addr.Prefix
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate address %q in scope %q", addr.Prefix, addr.Scope)
		}
		seen[key] = struct{}{}
	}
	return nil
}
