package utils

// A StringMap maps strings to strings.
type StringMap map[string]string

// SetUniqueEntry adds the given key/value pair to the StringMap, unless
// a mapping for the key already exists, in which case it returns false
// and the StringMap is not modified.
func (record StringMap) SetUniqueEntry(key, value string) bool {
	if _, found := record[key]; found {
		return false
	}
	record[key] = value
	return true
}

// Find returns the first index in a slice of StringMap where the
// predicate returns true, or -1 if the predicate never returns true.
func Find(dict []StringMap, predicate func(record StringMap) bool) int {
	for index, record := range dict {
		if predicate(record) {
			return index
		}
	}
	return -1
}
