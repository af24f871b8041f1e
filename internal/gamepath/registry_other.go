//go:build !windows

package gamepath

func steamPathFromRegistry() (string, error) {
	return "", ErrRegistryUnsupported
}
