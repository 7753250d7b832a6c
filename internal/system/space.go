package system

// HasSufficientSpace checks if the path has enough space for the required bytes
// It adds a 10% buffer to account for filesystem overhead and metadata
func HasSufficientSpace(path string, requiredBytes uint64) (bool, uint64, error) {
	available, err := FreeSpace(path)
	if err != nil {
		return false, 0, err
	}
	required := requiredBytes + requiredBytes/10
	return available >= required, available, nil
}
