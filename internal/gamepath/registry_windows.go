//go:build windows

package gamepath

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

var steamKeys = []string{
	`SOFTWARE\WOW6432Node\Valve\Steam`,
	`SOFTWARE\Valve\Steam`,
}

func steamPathFromRegistry() (string, error) {
	var errs []error
	for _, key := range steamKeys {
		p, err := regGetString(registry.LOCAL_MACHINE, key, "InstallPath")
		if err == nil && p != "" {
			return p, nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

func regGetString(root registry.Key, path, name string) (string, error) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()
	s, _, err := k.GetStringValue(name)
	return s, err
}
