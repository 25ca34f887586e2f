//go:build !debug

package config

func devDataFile(name string) (string, bool) {
	return "", false
}
