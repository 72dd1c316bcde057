package utils

// FindIndex returns the index of the first element equal to item, or -1. Plays and positions are
// comparable structs, so this matches a play by pawn, end and build.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
