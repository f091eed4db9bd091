package util

// Join prepends the configured prefix to a user key. An empty prefix leaves
// the key untouched so unprefixed deployments keep raw keyspaces.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}
